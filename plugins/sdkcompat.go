package plugins

import (
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/query"
)

// SdkCompatPlugin is the only layer that turns untyped wire bytes into a
// typed SignedTx: it accepts either an already-native-framed SignedTx or a
// Cosmos-SDK amino JSON transaction, normalizing both into the SignedTx
// shape the signer layer expects (§4.3 item 3).
type SdkCompatPlugin struct {
	inner App
}

// NewSdkCompatPlugin wraps inner.
func NewSdkCompatPlugin(inner App) *SdkCompatPlugin {
	return &SdkCompatPlugin{inner: inner}
}

// Call normalizes raw into a SignedTx and forwards its re-encoded bytes.
func (p *SdkCompatPlugin) Call(raw []byte) error {
	aminoTx, ok, err := ParseAminoTx(raw)
	if err != nil {
		return err
	}
	if !ok {
		// Already native-framed; pass through unchanged.
		return p.inner.Call(raw)
	}

	if len(aminoTx.Msgs) == 0 || len(aminoTx.Signatures) == 0 {
		return ErrSdkCompatDecode
	}
	sig := aminoTx.Signatures[0]
	sigType := SigTypeSDKAmino
	if sig.SigType == "eth" {
		sigType = SigTypeEthereum
	}

	fee, err := aminoTx.totalFee()
	if err != nil {
		return err
	}
	if !fee.Amount.IsZero() {
		pop := context.PaidStack.Push(&context.Paid{Symbol: string(fee.Symbol), Amount: uint64(fee.Amount)})
		defer pop()
	}

	tx := SignedTx{
		SigType:   sigType,
		PubKey:    sig.PubKey,
		Signature: sig.Signature,
		CallBytes: aminoTx.Msgs[0].Value,
	}
	return p.inner.Call(tx.Bytes())
}

// Query delegates unchanged; only the write path needs tx-shape
// normalization.
func (p *SdkCompatPlugin) Query(q query.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *SdkCompatPlugin) Inner() App { return p.inner }

var _ InnerApp = (*SdkCompatPlugin)(nil)
