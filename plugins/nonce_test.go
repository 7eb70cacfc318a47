package plugins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/store"
)

func withSigner(t *testing.T, addr coins.Address, fn func()) {
	t.Helper()
	pop := context.SignerStack.Push(context.Signer{Address: addr})
	defer pop()
	fn()
}

func TestNoncePluginAcceptsFirstNonce(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	var addr coins.Address
	addr[0] = 1
	withSigner(t, addr, func() {
		one := uint64(1)
		env := NonceEnvelope{Nonce: &one, InnerCall: []byte("x")}
		require.NoError(t, p.Call(env.Bytes()))
	})
	require.Len(t, app.calls, 1)
}

func TestNoncePluginRejectsStaleOrEqualNonce(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	var addr coins.Address
	addr[0] = 2
	withSigner(t, addr, func() {
		five := uint64(5)
		env := NonceEnvelope{Nonce: &five, InnerCall: []byte("x")}
		require.NoError(t, p.Call(env.Bytes()))

		// Re-submitting the same nonce must be rejected.
		require.ErrorIs(t, p.Call(env.Bytes()), ErrNonceInvalid)

		lower := uint64(3)
		lowerEnv := NonceEnvelope{Nonce: &lower, InnerCall: []byte("x")}
		require.ErrorIs(t, p.Call(lowerEnv.Bytes()), ErrNonceInvalid)
	})
	require.Len(t, app.calls, 1)
}

func TestNoncePluginRejectsTooLargeIncrease(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	var addr coins.Address
	addr[0] = 3
	withSigner(t, addr, func() {
		huge := NonceIncreaseLimit + 1
		env := NonceEnvelope{Nonce: &huge, InnerCall: []byte("x")}
		require.ErrorIs(t, p.Call(env.Bytes()), ErrNonceIncreaseTooBig)
	})
	require.Empty(t, app.calls)
}

func TestNoncePluginSignedWithoutNonceIsRejected(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	var addr coins.Address
	addr[0] = 4
	withSigner(t, addr, func() {
		env := NonceEnvelope{Nonce: nil, InnerCall: []byte("x")}
		require.ErrorIs(t, p.Call(env.Bytes()), ErrNonceRequired)
	})
	require.Empty(t, app.calls)
}

func TestNoncePluginUnsignedWithNonceIsRejected(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	one := uint64(1)
	env := NonceEnvelope{Nonce: &one, InnerCall: []byte("x")}
	require.ErrorIs(t, p.Call(env.Bytes()), ErrNonceForbidden)
	require.Empty(t, app.calls)
}

func TestNoncePluginUnsignedWithoutNonceForwards(t *testing.T) {
	app := &recordingApp{}
	view := store.NewView(store.NewMapStore())
	p := NewNoncePlugin(view, app)

	env := NonceEnvelope{Nonce: nil, InnerCall: []byte("x")}
	require.NoError(t, p.Call(env.Bytes()))
	require.Len(t, app.calls, 1)
}
