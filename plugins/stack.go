package plugins

import (
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// StackConfig bundles everything the fixed plugin stack needs to wire
// itself around a user application.
type StackConfig struct {
	ChainID   string
	FeeSymbol coins.Symbol
	NonceView store.View
	Responder *query.Responder
	App       App // the user application's own Call/Query dispatcher
}

// BuildStack composes the fixed stack outermost-to-innermost per §4.3:
// ABCI, chain-id, sdk-compat, signer, nonce, fee, query, application.
func BuildStack(cfg StackConfig) *ABCIPlugin {
	queryLayer := NewQueryPlugin(cfg.Responder, cfg.App)
	feeLayer := NewFeePlugin(cfg.FeeSymbol, queryLayer)
	nonceLayer := NewNoncePlugin(cfg.NonceView, feeLayer)
	signerLayer := NewSignerPlugin(nonceLayer)
	sdkCompatLayer := NewSdkCompatPlugin(signerLayer)
	chainIDLayer := NewChainIDPlugin(cfg.ChainID, sdkCompatLayer)
	return NewABCIPlugin(chainIDLayer)
}
