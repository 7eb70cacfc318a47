package plugins

import (
	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/query"
)

// MinFee is the minimum amount of FeeSymbol every transaction must pay,
// matching the source framework's MIN_FEE constant.
const MinFee uint64 = 10_000

// FeePlugin collects MinFee of FeeSymbol from the ambient Paid context
// populated out-of-band by the sdk-compat layer, burning it — per §9's
// design notes, burning the fee (rather than the no-op some legacy code
// paths left behind) is the normative behavior (§4.3 item 6). Native calls
// never populate Paid at all, so Call forwards those unburned rather than
// rejecting them outright.
type FeePlugin struct {
	symbol coins.Symbol
	inner  App
}

// NewFeePlugin wraps inner, burning any declared fee in symbol.
func NewFeePlugin(symbol coins.Symbol, inner App) *FeePlugin {
	return &FeePlugin{symbol: symbol, inner: inner}
}

// Call burns MinFee when a Paid context is present, then forwards to inner.
// No Paid context means no fee was declared for this call (the native
// signature path never installs one); such calls forward unburned rather
// than failing, mirroring the source framework's running-payer guard.
func (p *FeePlugin) Call(raw []byte) error {
	paid, ok := context.CurrentPaid()
	if ok {
		if coins.Symbol(paid.Symbol) != p.symbol {
			return ErrFeeSymbolMismatch
		}
		if paid.Amount < MinFee {
			return ErrFeeInsufficient
		}
		// Burn: the fee is permanently removed from circulation, not routed
		// to any account.
		paid.Amount -= MinFee
	}

	return p.inner.Call(raw)
}

// Query delegates unchanged; queries never pay fees.
func (p *FeePlugin) Query(q query.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *FeePlugin) Inner() App { return p.inner }

var _ InnerApp = (*FeePlugin)(nil)
