package plugins

import (
	"testing"
	"time"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/coins"
	"github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

type recordingApp struct {
	calls [][]byte
}

func (a *recordingApp) Call(raw []byte) error {
	a.calls = append(a.calls, raw)
	return nil
}

func (a *recordingApp) Query(q query.Query) ([]byte, error) {
	return nil, nil
}

func signNativeEd25519(t *testing.T, chainID string, callBytes []byte) SignedTx {
	t.Helper()
	priv := ed25519.GenPrivKey()
	digest := signedDigest(chainID, callBytes)
	sig, err := priv.Sign(digest[:])
	require.NoError(t, err)
	return SignedTx{
		SigType:   SigTypeNative,
		PubKey:    priv.PubKey().Bytes(),
		Signature: sig,
		CallBytes: callBytes,
	}
}

func TestStackHappyPathTransfer(t *testing.T) {
	app := &recordingApp{}
	nonceView := store.NewView(store.NewMapStore())
	responder := query.NewResponder(store.NewView(store.NewMapStore()))

	stack := BuildStack(StackConfig{
		ChainID:   "test-chain",
		FeeSymbol: coins.Symbol("ucore"),
		NonceView: nonceView,
		Responder: responder,
		App:       app,
	})

	innerCall := []byte("transfer 30 from A to B")
	nonce := uint64(1)
	env := NonceEnvelope{Nonce: &nonce, InnerCall: innerCall}
	tx := signNativeEd25519(t, "test-chain", env.Bytes())

	popPaid := context.PaidStack.Push(&context.Paid{Symbol: "ucore", Amount: MinFee})
	result, err := stack.Dispatch(ABCIKindDeliverTx, tx.Bytes(), time.Now())
	popPaid()

	require.NoError(t, err)
	require.Len(t, app.calls, 1)
	require.Equal(t, innerCall, app.calls[0])
	require.Empty(t, result.Logs)
}

func TestStackDispatchesNativeTransferWithoutPaidContext(t *testing.T) {
	app := &recordingApp{}
	nonceView := store.NewView(store.NewMapStore())
	responder := query.NewResponder(store.NewView(store.NewMapStore()))

	stack := BuildStack(StackConfig{
		ChainID:   "test-chain",
		FeeSymbol: coins.Symbol("ucore"),
		NonceView: nonceView,
		Responder: responder,
		App:       app,
	})

	// Native signed transactions never populate the ambient Paid context;
	// the real ABCI path never pushes one either, so dispatch must succeed
	// unburned rather than reject for lack of a declared fee.
	innerCall := []byte("transfer 30 from A to B")
	nonce := uint64(1)
	env := NonceEnvelope{Nonce: &nonce, InnerCall: innerCall}
	tx := signNativeEd25519(t, "test-chain", env.Bytes())

	result, err := stack.Dispatch(ABCIKindDeliverTx, tx.Bytes(), time.Now())

	require.NoError(t, err)
	require.Len(t, app.calls, 1)
	require.Equal(t, innerCall, app.calls[0])
	require.Empty(t, result.Logs)
}

func TestStackRejectsInvalidNonce(t *testing.T) {
	app := &recordingApp{}
	nonceView := store.NewView(store.NewMapStore())
	responder := query.NewResponder(store.NewView(store.NewMapStore()))

	stack := BuildStack(StackConfig{
		ChainID:   "test-chain",
		FeeSymbol: coins.Symbol("ucore"),
		NonceView: nonceView,
		Responder: responder,
		App:       app,
	})

	// Pre-seed the signer's nonce at 5 directly in the view, mirroring "from
	// state where nonce[A]=5".
	priv := ed25519.GenPrivKey()
	addr := coins.NativeAddress(priv.PubKey().Bytes())
	var nonceBuf [8]byte
	nonceBuf[7] = 5
	require.NoError(t, nonceView.Put(addr[:], nonceBuf[:]))

	innerCall := []byte("transfer 10 from A to B")
	staleNonce := uint64(5)
	env := NonceEnvelope{Nonce: &staleNonce, InnerCall: innerCall}

	digest := signedDigest("test-chain", env.Bytes())
	sig, err := priv.Sign(digest[:])
	require.NoError(t, err)
	tx := SignedTx{SigType: SigTypeNative, PubKey: priv.PubKey().Bytes(), Signature: sig, CallBytes: env.Bytes()}

	popPaid := context.PaidStack.Push(&context.Paid{Symbol: "ucore", Amount: MinFee})
	result, err := stack.Dispatch(ABCIKindDeliverTx, tx.Bytes(), time.Now())
	popPaid()

	require.Error(t, err)
	require.ErrorIs(t, err, ErrNonceInvalid)
	require.Empty(t, app.calls)
	require.NotEmpty(t, result.Logs)
}

func TestStackRejectsWrongChainID(t *testing.T) {
	app := &recordingApp{}
	nonceView := store.NewView(store.NewMapStore())
	responder := query.NewResponder(store.NewView(store.NewMapStore()))

	stack := BuildStack(StackConfig{
		ChainID:   "real-chain",
		FeeSymbol: coins.Symbol("ucore"),
		NonceView: nonceView,
		Responder: responder,
		App:       app,
	})

	nonce := uint64(1)
	env := NonceEnvelope{Nonce: &nonce, InnerCall: []byte("x")}
	tx := signNativeEd25519(t, "wrong-chain", env.Bytes())

	popPaid := context.PaidStack.Push(&context.Paid{Symbol: "ucore", Amount: MinFee})
	_, err := stack.Dispatch(ABCIKindDeliverTx, tx.Bytes(), time.Now())
	popPaid()

	require.ErrorIs(t, err, ErrSignerInvalid)
}
