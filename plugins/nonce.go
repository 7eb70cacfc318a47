package plugins

import (
	"bytes"

	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/encoding"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// NonceIncreaseLimit bounds how far a single call may advance a signer's
// nonce, preventing a malicious or buggy client from exhausting the nonce
// space in one step.
const NonceIncreaseLimit uint64 = 1000

// NoncePlugin enforces monotone strictly-increasing per-signer nonces
// (§4.3 item 5, invariant P6). It stores the last accepted nonce per
// address in its own store sub-tree; the next call must carry a larger one.
type NoncePlugin struct {
	view  store.View
	inner App
}

// NewNoncePlugin wraps inner, storing nonces under view.
func NewNoncePlugin(view store.View, inner App) *NoncePlugin {
	return &NoncePlugin{view: view, inner: inner}
}

// NonceEnvelope is the wire shape the nonce layer expects: an optional nonce
// (absent for unsigned calls) plus the remaining inner-call bytes.
type NonceEnvelope struct {
	Nonce     *uint64
	InnerCall []byte
}

// Bytes encodes a NonceEnvelope: a presence byte, the nonce if present, then
// the inner call bytes.
func (e NonceEnvelope) Bytes() []byte {
	var buf bytes.Buffer
	if e.Nonce == nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		encoding.WriteU64(&buf, *e.Nonce)
	}
	encoding.WriteBytes(&buf, e.InnerCall)
	return buf.Bytes()
}

// DecodeNonceEnvelope parses a NonceEnvelope from its wire form.
func DecodeNonceEnvelope(b []byte) (NonceEnvelope, error) {
	present, b, err := encoding.ReadU8(b)
	if err != nil {
		return NonceEnvelope{}, err
	}
	var nonce *uint64
	if present == 1 {
		var n uint64
		n, b, err = encoding.ReadU64(b)
		if err != nil {
			return NonceEnvelope{}, err
		}
		nonce = &n
	}
	inner, _, err := encoding.ReadBytes(b)
	if err != nil {
		return NonceEnvelope{}, err
	}
	return NonceEnvelope{Nonce: nonce, InnerCall: inner}, nil
}

// Call enforces the nonce contract then forwards the inner call bytes.
func (p *NoncePlugin) Call(raw []byte) error {
	env, err := DecodeNonceEnvelope(raw)
	if err != nil {
		return err
	}

	signer, hasSigner := context.CurrentSigner()

	switch {
	case hasSigner && env.Nonce != nil:
		key := signer.Address[:]
		expected, err := p.loadNonce(key)
		if err != nil {
			return err
		}
		if *env.Nonce <= expected {
			return ErrNonceInvalid
		}
		if *env.Nonce-expected > NonceIncreaseLimit {
			return ErrNonceIncreaseTooBig
		}
		if err := p.storeNonce(key, *env.Nonce); err != nil {
			return err
		}
		return p.inner.Call(env.InnerCall)

	case !hasSigner && env.Nonce == nil:
		return p.inner.Call(env.InnerCall)

	case hasSigner && env.Nonce == nil:
		return ErrNonceRequired

	default: // !hasSigner && env.Nonce != nil
		return ErrNonceForbidden
	}
}

func (p *NoncePlugin) loadNonce(address []byte) (uint64, error) {
	v, err := p.view.Get(address)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	n, _, err := encoding.ReadU64(v)
	return n, err
}

func (p *NoncePlugin) storeNonce(address []byte, n uint64) error {
	var buf bytes.Buffer
	encoding.WriteU64(&buf, n)
	return p.view.Put(address, buf.Bytes())
}

// Query delegates unchanged.
func (p *NoncePlugin) Query(q query.Query) ([]byte, error) {
	return p.inner.Query(q)
}

// Inner returns the wrapped layer.
func (p *NoncePlugin) Inner() App { return p.inner }

var _ InnerApp = (*NoncePlugin)(nil)
