package plugins

import (
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/query"
)

// ChainIDPlugin installs the ambient chain id for the duration of one call,
// so the signer layer below can bind signatures to it (§4.3 item 2).
type ChainIDPlugin struct {
	chainID context.ChainID
	inner   App
}

// NewChainIDPlugin wraps inner, tagging every call with chainID.
func NewChainIDPlugin(chainID string, inner App) *ChainIDPlugin {
	return &ChainIDPlugin{chainID: context.ChainID(chainID), inner: inner}
}

// Call pushes the chain id context, delegates, and tears it down on every
// path including failure.
func (p *ChainIDPlugin) Call(raw []byte) error {
	pop := context.ChainIDStack.Push(p.chainID)
	defer pop()
	return p.inner.Call(raw)
}

// Query delegates unchanged; chain id only matters for signature
// verification on the write path.
func (p *ChainIDPlugin) Query(q query.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *ChainIDPlugin) Inner() App { return p.inner }

var _ InnerApp = (*ChainIDPlugin)(nil)
