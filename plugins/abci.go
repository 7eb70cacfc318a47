package plugins

import (
	"time"

	"github.com/statesmith/corestate/context"
	queryvariant "github.com/statesmith/corestate/query"
)

// ABCIKind tags which ABCI lifecycle message is being dispatched through
// the plugin stack (§4.3 item 1).
type ABCIKind uint8

const (
	ABCIKindInitChain ABCIKind = iota
	ABCIKindBeginBlock
	ABCIKindEndBlock
	ABCIKindDeliverTx
	ABCIKindCheckTx
)

// ABCIResult carries everything a call accumulated in its ambient contexts,
// for the ABCI adapter (package abci) to fold into its response.
type ABCIResult struct {
	Events           []context.Event
	Logs             []string
	ValidatorUpdates []context.ValidatorUpdate
}

// ABCIPlugin is the outermost layer: it establishes the per-call Time,
// Events, Logs, and Validators ambient contexts, dispatches into the inner
// stack, and tears every context down on exit — including on failure, so a
// rejected call never leaks partial events or validator updates into the
// next call (§4.3 invariant b).
type ABCIPlugin struct {
	inner App
}

// NewABCIPlugin wraps inner.
func NewABCIPlugin(inner App) *ABCIPlugin {
	return &ABCIPlugin{inner: inner}
}

// Dispatch runs one ABCI-kind message through the inner stack at blockTime,
// returning everything the call emitted regardless of whether it
// succeeded.
func (p *ABCIPlugin) Dispatch(kind ABCIKind, raw []byte, blockTime time.Time) (ABCIResult, error) {
	popTime := context.TimeStack.Push(blockTime)
	defer popTime()

	events := context.NewEvents()
	popEvents := context.EventsStack.Push(events)
	defer popEvents()

	logs := context.NewLogs()
	popLogs := context.LogsStack.Push(logs)
	defer popLogs()

	validators := context.NewValidators()
	popValidators := context.ValidatorsStack.Push(validators)
	defer popValidators()

	err := p.dispatchInner(kind, raw)

	result := ABCIResult{
		Events:           events.All(),
		Logs:             logs.All(),
		ValidatorUpdates: validators.Drain(),
	}
	if err != nil {
		result.Logs = append(result.Logs, err.Error())
		return result, err
	}
	return result, nil
}

func (p *ABCIPlugin) dispatchInner(kind ABCIKind, raw []byte) error {
	switch kind {
	case ABCIKindDeliverTx, ABCIKindCheckTx, ABCIKindInitChain, ABCIKindBeginBlock, ABCIKindEndBlock:
		return p.inner.Call(raw)
	default:
		return ErrUnknownABCIKind
	}
}

// Query delegates unchanged; ABCI queries carry no lifecycle context.
func (p *ABCIPlugin) Query(q queryvariant.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *ABCIPlugin) Inner() App { return p.inner }

var _ InnerApp = (*ABCIPlugin)(nil)
