package abci

import (
	"context"
	"testing"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/require"

	"github.com/statesmith/corestate/coins"
	corectx "github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/merkle"
	"github.com/statesmith/corestate/plugins"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/snapshot"
	"github.com/statesmith/corestate/store"
)

// lastCallApp is a minimal Factory-compatible application: Call persists
// the raw bytes it received under a fixed key, Query answers nothing of
// its own (the responder's raw-key fallback is what the tests exercise).
type lastCallApp struct {
	view store.View
}

func (a *lastCallApp) Call(raw []byte) error {
	return a.view.Put([]byte("last"), raw)
}

func (a *lastCallApp) Query(_ query.Query) ([]byte, error) {
	return nil, nil
}

func testFactory(root store.View) (plugins.App, *query.Responder) {
	app := &lastCallApp{view: root}
	responder := query.NewResponder(root)
	return app, responder
}

func newTestApplication(t *testing.T, snapMgr *snapshot.Manager) *Application {
	t.Helper()
	tree := merkle.NewTree(dbm.NewMemDB(), cmtlog.NewNopLogger())
	cfg := Config{
		ChainID:     "test-chain",
		FeeSymbol:   coins.Symbol("ucore"),
		Factory:     testFactory,
		SnapshotMgr: snapMgr,
	}
	return NewApplication(tree, cfg)
}

// unsignedCall wraps inner in the native SignedTx frame with no signature
// and no nonce, which the signer and nonce plugins both forward unchecked.
func unsignedCall(inner []byte) []byte {
	env := plugins.NonceEnvelope{InnerCall: inner}
	return plugins.SignedTx{SigType: plugins.SigTypeNative, CallBytes: env.Bytes()}.Bytes()
}

func withPaid(t *testing.T, fn func()) {
	t.Helper()
	pop := corectx.PaidStack.Push(&corectx.Paid{Symbol: "ucore", Amount: plugins.MinFee})
	defer pop()
	fn()
}

func TestApplicationInitChainAndCommit(t *testing.T) {
	app := newTestApplication(t, nil)

	var resp *abcitypes.ResponseInitChain
	var err error
	withPaid(t, func() {
		resp, err = app.InitChain(context.Background(), &abcitypes.RequestInitChain{
			Time:          time.Now(),
			AppStateBytes: unsignedCall([]byte("genesis-state")),
		})
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AppHash)

	info, err := app.Info(context.Background(), &abcitypes.RequestInfo{})
	require.NoError(t, err)
	require.EqualValues(t, 1, info.LastBlockHeight)
	require.Equal(t, resp.AppHash, info.LastBlockAppHash)
}

func TestApplicationCheckTxAtomicity(t *testing.T) {
	app := newTestApplication(t, nil)

	var resp *abcitypes.ResponseCheckTx
	var err error
	withPaid(t, func() {
		resp, err = app.CheckTx(context.Background(), &abcitypes.RequestCheckTx{Tx: unsignedCall([]byte("x"))})
	})
	require.NoError(t, err)
	require.Equal(t, CodeTypeOK, resp.Code)
}

func TestApplicationCheckTxRejectsInsufficientFee(t *testing.T) {
	app := newTestApplication(t, nil)

	pop := corectx.PaidStack.Push(&corectx.Paid{Symbol: "ucore", Amount: plugins.MinFee - 1})
	resp, err := app.CheckTx(context.Background(), &abcitypes.RequestCheckTx{Tx: unsignedCall([]byte("x"))})
	pop()
	require.NoError(t, err)
	require.Equal(t, CodeTypeError, resp.Code)
	require.NotEmpty(t, resp.Log)
}

func TestApplicationFinalizeBlockAndCommitPersistsState(t *testing.T) {
	app := newTestApplication(t, nil)

	var finalizeResp *abcitypes.ResponseFinalizeBlock
	var err error
	withPaid(t, func() {
		finalizeResp, err = app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
			Height: 1,
			Time:   time.Now(),
			Txs:    [][]byte{unsignedCall([]byte("hello"))},
		})
	})
	require.NoError(t, err)
	require.Len(t, finalizeResp.TxResults, 1)
	require.Equal(t, CodeTypeOK, finalizeResp.TxResults[0].Code)

	commitResp, err := app.Commit(context.Background(), &abcitypes.RequestCommit{})
	require.NoError(t, err)
	require.NotNil(t, commitResp)

	queryResp, err := app.Query(context.Background(), &abcitypes.RequestQuery{
		Data: query.Encode(query.RawKey([]byte("last"))),
	})
	require.NoError(t, err)
	require.Equal(t, CodeTypeOK, queryResp.Code)
	require.Equal(t, []byte("hello"), queryResp.Value)
}

func TestApplicationFinalizeBlockDeliversNativeTxWithoutPaidContext(t *testing.T) {
	// The real ABCI path never pushes a Paid context — only the sdk-compat
	// layer does, for amino-JSON txs carrying a fee object — so a native tx
	// reaching FinalizeBlock unburned must still commit rather than abort.
	app := newTestApplication(t, nil)

	finalizeResp, err := app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
		Height: 1,
		Time:   time.Now(),
		Txs:    [][]byte{unsignedCall([]byte("no-fee"))},
	})
	require.NoError(t, err)
	require.Len(t, finalizeResp.TxResults, 1)
	require.Equal(t, CodeTypeOK, finalizeResp.TxResults[0].Code)
}

func TestApplicationFinalizeBlockAggregatesFailuresWithoutAbortingBlock(t *testing.T) {
	app := newTestApplication(t, nil)

	var finalizeResp *abcitypes.ResponseFinalizeBlock
	var err error
	pop := corectx.PaidStack.Push(&corectx.Paid{Symbol: "ucore", Amount: plugins.MinFee - 1})
	finalizeResp, err = app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
		Height: 1,
		Time:   time.Now(),
		Txs:    [][]byte{unsignedCall([]byte("underpaid"))},
	})
	pop()
	require.NoError(t, err)
	require.Len(t, finalizeResp.TxResults, 1)
	require.Equal(t, CodeTypeError, finalizeResp.TxResults[0].Code)
}

func TestApplicationCommitCreatesSnapshotWhenFilterSaysSo(t *testing.T) {
	mgr := snapshot.NewManager(snapshot.SpecificHeightFilter{Height: 1})
	app := newTestApplication(t, mgr)

	withPaid(t, func() {
		_, err := app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
			Height: 1,
			Time:   time.Now(),
			Txs:    [][]byte{unsignedCall([]byte("x"))},
		})
		require.NoError(t, err)
	})
	_, err := app.Commit(context.Background(), &abcitypes.RequestCommit{})
	require.NoError(t, err)

	list := mgr.List()
	require.Len(t, list, 1)
	require.EqualValues(t, 1, list[0].Height)
}

func TestApplicationQueryWithProveAttachesVerifiableProof(t *testing.T) {
	app := newTestApplication(t, nil)

	withPaid(t, func() {
		_, err := app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
			Height: 1,
			Time:   time.Now(),
			Txs:    [][]byte{unsignedCall([]byte("hello"))},
		})
		require.NoError(t, err)
	})
	_, err := app.Commit(context.Background(), &abcitypes.RequestCommit{})
	require.NoError(t, err)

	req := &abcitypes.RequestQuery{
		Data:  query.Encode(query.RawKey([]byte("last"))),
		Prove: true,
	}
	resp, err := app.Query(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, CodeTypeOK, resp.Code)
	require.Equal(t, []byte("hello"), resp.Value)
	require.NotNil(t, resp.ProofOps)
	require.Len(t, resp.ProofOps.Ops, 1)

	op := resp.ProofOps.Ops[0]
	require.Equal(t, merkle.Label, op.Type)

	proof, err := merkle.DecodeProof(op.Data)
	require.NoError(t, err)
	require.NoError(t, merkle.VerifyLabelBinding(proof, merkle.Label, app.tree.RootHash()))

	keyProof, ok := proof.Proofs["last"]
	require.True(t, ok)
	require.True(t, merkle.VerifyMembership(keyProof, proof.Root, []byte("last"), []byte("hello")))
}

func TestApplicationCommitHaltsAtConfiguredStopHeight(t *testing.T) {
	tree := merkle.NewTree(dbm.NewMemDB(), cmtlog.NewNopLogger())
	stopHeight := uint64(1)
	app := NewApplication(tree, Config{
		ChainID:    "test-chain",
		FeeSymbol:  coins.Symbol("ucore"),
		Factory:    testFactory,
		StopHeight: &stopHeight,
	})

	withPaid(t, func() {
		_, err := app.FinalizeBlock(context.Background(), &abcitypes.RequestFinalizeBlock{
			Height: 1,
			Time:   time.Now(),
			Txs:    [][]byte{unsignedCall([]byte("x"))},
		})
		require.NoError(t, err)
	})

	require.Panics(t, func() {
		_, _ = app.Commit(context.Background(), &abcitypes.RequestCommit{})
	})
}
