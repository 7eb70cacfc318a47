package abci

import (
	"context"
	"fmt"
	"strings"
	"time"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	cmtprotocrypto "github.com/cometbft/cometbft/proto/tendermint/crypto"
	cmtversion "github.com/cometbft/cometbft/version"

	"github.com/statesmith/corestate/coins"
	corectx "github.com/statesmith/corestate/context"
	"github.com/statesmith/corestate/merkle"
	"github.com/statesmith/corestate/plugins"
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/snapshot"
	"github.com/statesmith/corestate/store"
)

// AppVersion is the application protocol version reported to the consensus
// engine via Info.
const AppVersion uint64 = 1

// Everything under reservedPrefix belongs to this package, not the
// application built on top of it: the nonce index and the operator map
// live here so an application author is free to use any other single-byte
// field index without fear of collision.
var (
	reservedPrefix = []byte{0xff}
	noncePrefix    = []byte{0x01}
	operatorPrefix = []byte{0x02}
)

// Factory builds the application's own call dispatcher and query responder
// bound to root, the full (unprefixed) store view. It is supplied by the
// concrete application (package app) and invoked fresh for every write-cache
// frame the adapter creates, since the returned App and Responder close
// over the view they were built against.
type Factory func(root store.View) (plugins.App, *query.Responder)

// Config bundles everything Application needs to wire the fixed plugin
// stack around an application built with Factory.
type Config struct {
	ChainID     string
	FeeSymbol   coins.Symbol
	Factory     Factory
	SnapshotMgr *snapshot.Manager
	Logger      cmtlog.Logger

	// StopHeight, if set, halts the process once Commit has persisted a
	// version at or above it. Operators set this via the node package's
	// STOP_HEIGHT environment variable to coordinate a clean halt ahead of
	// a binary upgrade.
	StopHeight *uint64
}

// restoreState accumulates chunks offered for an in-progress state-sync
// restore until every chunk has arrived.
type restoreState struct {
	expectedHeight uint64
	expectedHash   []byte
	totalChunks    uint32
	chunks         map[uint32][]byte
}

// Application adapts the fixed plugin stack to cometbft's ABCI
// Application interface. It owns the node's authoritative merkle tree and
// the mempool_buf/consensus_buf copy-on-write buffers (§4.6).
type Application struct {
	abcitypes.BaseApplication

	tree         *merkle.Tree
	mempoolBuf   *store.WriteCache
	consensusBuf *store.WriteCache
	cfg          Config
	operators    *OperatorMap
	logger       cmtlog.Logger
	height       int64
	restoring    *restoreState
}

// NewApplication constructs an Application over tree. cfg.Logger defaults
// to a no-op logger, matching the teacher's NewVStoreApplication default.
func NewApplication(tree *merkle.Tree, cfg Config) *Application {
	logger := cfg.Logger
	if logger == nil {
		logger = cmtlog.NewNopLogger()
	}
	app := &Application{
		tree:         tree,
		mempoolBuf:   store.NewWriteCache(tree),
		consensusBuf: store.NewWriteCache(tree),
		cfg:          cfg,
		logger:       logger,
		height:       tree.Version(),
	}
	operatorView := store.NewView(app.consensusBuf).Sub(reservedPrefix).Sub(operatorPrefix)
	app.operators = NewOperatorMap(operatorView)
	return app
}

// Operators exposes the persistent operator-address-to-consensus-key map
// for application call handlers that manage validators by operator
// address.
func (a *Application) Operators() *OperatorMap { return a.operators }

// buildStack composes a fresh plugin stack over base, rebuilt per call per
// §4.7: a write-cache frame's App and Responder must close over that
// frame's own view, not a shared one.
func (a *Application) buildStack(base store.Store) *plugins.ABCIPlugin {
	root := store.NewView(base)
	nonceView := root.Sub(reservedPrefix).Sub(noncePrefix)
	innerApp, responder := a.cfg.Factory(root)
	return plugins.BuildStack(plugins.StackConfig{
		ChainID:   a.cfg.ChainID,
		FeeSymbol: a.cfg.FeeSymbol,
		NonceView: nonceView,
		Responder: responder,
		App:       innerApp,
	})
}

// stepAtomic runs fn against a disposable write-cache layered on base: on
// success the cache is flushed into base, on failure it is discarded
// untouched. This is §4.7's step_atomic applied at the per-transaction
// granularity CheckTx/DeliverTx each require.
func stepAtomic(base store.Store, fn func(store.Store) error) error {
	cache := store.NewWriteCache(base)
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Flush()
}

// Info reports the application's version and last committed state to the
// consensus engine at startup.
func (a *Application) Info(_ context.Context, _ *abcitypes.RequestInfo) (*abcitypes.ResponseInfo, error) {
	return &abcitypes.ResponseInfo{
		Version:          cmtversion.ABCIVersion,
		AppVersion:       AppVersion,
		LastBlockHeight:  a.height,
		LastBlockAppHash: a.tree.RootHash(),
	}, nil
}

// InitChain seeds the application with its genesis app_state, run against
// consensus_buf and flushed immediately, then commits a version at height
// zero so the genesis root hash is authoritative from the first block.
func (a *Application) InitChain(_ context.Context, req *abcitypes.RequestInitChain) (*abcitypes.ResponseInitChain, error) {
	if len(req.AppStateBytes) > 0 {
		stack := a.buildStack(a.consensusBuf)
		if _, err := stack.Dispatch(plugins.ABCIKindInitChain, req.AppStateBytes, req.Time); err != nil {
			return nil, err
		}
	}
	if err := a.consensusBuf.Flush(); err != nil {
		return nil, err
	}
	hash, version, err := a.tree.SaveVersion()
	if err != nil {
		return nil, err
	}
	a.height = version
	return &abcitypes.ResponseInitChain{AppHash: hash}, nil
}

// CheckTx validates tx against mempool_buf atomically: on success its
// writes (nonce advance, fee debit) accumulate in mempool_buf so a later,
// dependent transaction in the same mempool window sees them; on failure
// nothing it touched survives.
func (a *Application) CheckTx(_ context.Context, req *abcitypes.RequestCheckTx) (*abcitypes.ResponseCheckTx, error) {
	err := stepAtomic(a.mempoolBuf, func(cache store.Store) error {
		stack := a.buildStack(cache)
		_, dispatchErr := stack.Dispatch(plugins.ABCIKindCheckTx, req.Tx, time.Now())
		return dispatchErr
	})
	if err != nil {
		return &abcitypes.ResponseCheckTx{Code: CodeTypeError, Log: err.Error()}, nil
	}
	return &abcitypes.ResponseCheckTx{Code: CodeTypeOK}, nil
}

// PrepareProposal validates each candidate transaction against a scratch
// cache over the last committed tree (never mempool_buf, so building a
// proposal never perturbs mempool state) and forwards only the ones that
// pass.
func (a *Application) PrepareProposal(_ context.Context, req *abcitypes.RequestPrepareProposal) (*abcitypes.ResponsePrepareProposal, error) {
	scratch := store.NewWriteCache(a.tree)
	txs := make([][]byte, 0, len(req.Txs))
	for _, tx := range req.Txs {
		err := stepAtomic(scratch, func(cache store.Store) error {
			stack := a.buildStack(cache)
			_, dispatchErr := stack.Dispatch(plugins.ABCIKindCheckTx, tx, req.Time)
			return dispatchErr
		})
		if err != nil {
			continue
		}
		txs = append(txs, tx)
	}
	return &abcitypes.ResponsePrepareProposal{Txs: txs}, nil
}

// ProcessProposal re-validates a received proposal's transactions the same
// way PrepareProposal selected them, rejecting the whole proposal if any
// transaction fails.
func (a *Application) ProcessProposal(_ context.Context, req *abcitypes.RequestProcessProposal) (*abcitypes.ResponseProcessProposal, error) {
	scratch := store.NewWriteCache(a.tree)
	for _, tx := range req.Txs {
		err := stepAtomic(scratch, func(cache store.Store) error {
			stack := a.buildStack(cache)
			_, dispatchErr := stack.Dispatch(plugins.ABCIKindCheckTx, tx, req.Time)
			return dispatchErr
		})
		if err != nil {
			return &abcitypes.ResponseProcessProposal{Status: abcitypes.ResponseProcessProposal_REJECT}, nil
		}
	}
	return &abcitypes.ResponseProcessProposal{Status: abcitypes.ResponseProcessProposal_ACCEPT}, nil
}

// FinalizeBlock executes every transaction against consensus_buf
// atomically, aggregating the events, logs and validator updates each one
// emitted. Nothing is persisted to the tree until Commit.
func (a *Application) FinalizeBlock(_ context.Context, req *abcitypes.RequestFinalizeBlock) (*abcitypes.ResponseFinalizeBlock, error) {
	txResults := make([]*abcitypes.ExecTxResult, len(req.Txs))
	var allUpdates []corectx.ValidatorUpdate

	for i, tx := range req.Txs {
		var result plugins.ABCIResult
		err := stepAtomic(a.consensusBuf, func(cache store.Store) error {
			stack := a.buildStack(cache)
			r, dispatchErr := stack.Dispatch(plugins.ABCIKindDeliverTx, tx, req.Time)
			result = r
			return dispatchErr
		})
		txResults[i] = toExecTxResult(result, err)
		if err == nil {
			allUpdates = append(allUpdates, result.ValidatorUpdates...)
		}
	}

	a.height = req.Height
	return &abcitypes.ResponseFinalizeBlock{
		TxResults:        txResults,
		ValidatorUpdates: toABCIValidatorUpdates(allUpdates),
		AppHash:          a.tree.RootHash(),
	}, nil
}

// Commit flushes consensus_buf into the tree, saves a new version, resets
// both buffers, and captures a snapshot if any configured filter wants one
// at this height.
func (a *Application) Commit(_ context.Context, _ *abcitypes.RequestCommit) (*abcitypes.ResponseCommit, error) {
	if err := a.consensusBuf.Flush(); err != nil {
		return nil, err
	}
	hash, version, err := a.tree.SaveVersion()
	if err != nil {
		return nil, err
	}
	a.height = version
	a.mempoolBuf.Discard()
	a.consensusBuf.Discard()
	a.maybeSnapshot(uint64(version), hash)
	a.maybeStop(uint64(version))
	return &abcitypes.ResponseCommit{}, nil
}

// maybeStop halts the process once height reaches the configured
// StopHeight, giving an operator a deterministic point to swap binaries at
// during a coordinated upgrade. The consensus engine restarts the process
// and resumes from the next height once the new binary is in place.
func (a *Application) maybeStop(height uint64) {
	if a.cfg.StopHeight == nil || height < *a.cfg.StopHeight {
		return
	}
	a.logger.Info("reached configured stop height, halting", "height", height)
	panic(fmt.Sprintf("reached stop height (%d)", *a.cfg.StopHeight))
}

func (a *Application) maybeSnapshot(height uint64, hash []byte) {
	if a.cfg.SnapshotMgr == nil || !a.cfg.SnapshotMgr.ShouldCreate(height) {
		return
	}
	export, err := a.tree.Export()
	if err != nil {
		a.logger.Error("snapshot export failed", "height", height, "err", err)
		return
	}
	a.cfg.SnapshotMgr.Create(height, hash, export)
}

// Query answers a read against the last committed tree state; queries
// never touch mempool_buf or consensus_buf, matching the ABCI convention
// that Query always reflects the state as of the previous Commit. When
// req.Prove is set, the keys consulted in answering q are additionally
// proven against the tree's current root via an ICS-23 CombinedProof
// attached as a single ProofOp (§6).
func (a *Application) Query(_ context.Context, req *abcitypes.RequestQuery) (*abcitypes.ResponseQuery, error) {
	q, err := query.Decode(req.Data)
	if err != nil {
		return &abcitypes.ResponseQuery{Code: CodeTypeError, Log: err.Error()}, nil
	}

	if !req.Prove {
		_, responder := a.cfg.Factory(store.NewView(a.tree))
		value, err := responder.Respond(q)
		if err != nil {
			return &abcitypes.ResponseQuery{Code: CodeTypeError, Log: err.Error()}, nil
		}
		return &abcitypes.ResponseQuery{
			Code:   CodeTypeOK,
			Key:    req.Data,
			Value:  value,
			Height: a.height,
		}, nil
	}

	builder := merkle.NewProofBuilder(a.tree)
	_, responder := a.cfg.Factory(store.NewView(builder))
	value, err := responder.Respond(q)
	if err != nil {
		return &abcitypes.ResponseQuery{Code: CodeTypeError, Log: err.Error()}, nil
	}

	proofOps, err := a.buildProofOps(req.Data, builder)
	if err != nil {
		return &abcitypes.ResponseQuery{Code: CodeTypeError, Log: err.Error()}, nil
	}

	return &abcitypes.ResponseQuery{
		Code:     CodeTypeOK,
		Key:      req.Data,
		Value:    value,
		Height:   a.height,
		ProofOps: proofOps,
	}, nil
}

// buildProofOps covers every key builder recorded with an ICS-23 proof
// rooted at the tree's current root hash, encodes it, and wraps it in the
// single-op ProofOps ABCI transports expect.
func (a *Application) buildProofOps(key []byte, builder *merkle.ProofBuilder) (*cmtprotocrypto.ProofOps, error) {
	presentKeys := make(map[string][]byte)
	for _, touched := range builder.TouchedKeys() {
		v, err := a.tree.Get(touched)
		if err != nil {
			return nil, err
		}
		if v != nil {
			presentKeys[string(touched)] = v
		}
	}

	proof, err := merkle.BuildProof(a.tree, a.tree.RootHash(), builder, presentKeys)
	if err != nil {
		return nil, err
	}
	proofBytes, err := merkle.EncodeProof(proof)
	if err != nil {
		return nil, err
	}

	return &cmtprotocrypto.ProofOps{
		Ops: []cmtprotocrypto.ProofOp{{Type: merkle.Label, Key: key, Data: proofBytes}},
	}, nil
}

func toExecTxResult(result plugins.ABCIResult, err error) *abcitypes.ExecTxResult {
	events := make([]abcitypes.Event, 0, len(result.Events))
	for _, e := range result.Events {
		attrs := make([]abcitypes.EventAttribute, 0, len(e.Attributes))
		for _, a := range e.Attributes {
			attrs = append(attrs, abcitypes.EventAttribute{Key: a.Key, Value: a.Value})
		}
		events = append(events, abcitypes.Event{Type: e.Type, Attributes: attrs})
	}

	r := &abcitypes.ExecTxResult{Code: CodeTypeOK, Events: events, Log: strings.Join(result.Logs, "\n")}
	if err != nil {
		r.Code = CodeTypeError
		r.Log = err.Error()
	}
	return r
}

func toABCIValidatorUpdates(updates []corectx.ValidatorUpdate) []abcitypes.ValidatorUpdate {
	out := make([]abcitypes.ValidatorUpdate, 0, len(updates))
	for _, u := range updates {
		out = append(out, abcitypes.ValidatorUpdate{
			PubKey: cmtprotocrypto.PublicKey{
				Sum: &cmtprotocrypto.PublicKey_Ed25519{Ed25519: append([]byte(nil), u.PubKey[:]...)},
			},
			Power: u.VotingPower,
		})
	}
	return out
}
