package abci

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
)

// ListSnapshots advertises every snapshot package snapshot's Manager has
// retained, highest height first.
func (a *Application) ListSnapshots(_ context.Context, _ *abcitypes.RequestListSnapshots) (*abcitypes.ResponseListSnapshots, error) {
	if a.cfg.SnapshotMgr == nil {
		return &abcitypes.ResponseListSnapshots{}, nil
	}
	infos := a.cfg.SnapshotMgr.List()
	out := make([]*abcitypes.Snapshot, 0, len(infos))
	for _, info := range infos {
		out = append(out, &abcitypes.Snapshot{
			Height: info.Height,
			Format: 1,
			Chunks: info.Chunks,
			Hash:   info.Hash,
		})
	}
	return &abcitypes.ResponseListSnapshots{Snapshots: out}, nil
}

// OfferSnapshot begins a restore: every chunk offered afterward is
// accumulated until the declared chunk count is reached. A genuine
// canonical-height check (interval-aligned or a recognized
// specific-height) is the donor's responsibility via its own filters; this
// side simply accepts any well-formed offer and verifies the reassembled
// export's hash once complete.
func (a *Application) OfferSnapshot(_ context.Context, req *abcitypes.RequestOfferSnapshot) (*abcitypes.ResponseOfferSnapshot, error) {
	if req.Snapshot == nil {
		return &abcitypes.ResponseOfferSnapshot{Result: abcitypes.ResponseOfferSnapshot_REJECT}, nil
	}
	a.restoring = &restoreState{
		expectedHeight: req.Snapshot.Height,
		expectedHash:   append([]byte(nil), req.Snapshot.Hash...),
		totalChunks:    req.Snapshot.Chunks,
		chunks:         make(map[uint32][]byte),
	}
	return &abcitypes.ResponseOfferSnapshot{Result: abcitypes.ResponseOfferSnapshot_ACCEPT}, nil
}

// LoadSnapshotChunk serves one chunk of a retained snapshot to a
// state-syncing peer.
func (a *Application) LoadSnapshotChunk(_ context.Context, req *abcitypes.RequestLoadSnapshotChunk) (*abcitypes.ResponseLoadSnapshotChunk, error) {
	if a.cfg.SnapshotMgr == nil {
		return &abcitypes.ResponseLoadSnapshotChunk{}, nil
	}
	return &abcitypes.ResponseLoadSnapshotChunk{
		Chunk: a.cfg.SnapshotMgr.LoadChunk(req.Height, req.Chunk),
	}, nil
}

// ApplySnapshotChunk accumulates one chunk of an in-progress restore. Once
// every chunk has arrived, the reassembled export is imported into the
// tree and a version is saved; a hash mismatch against the offered
// snapshot rejects the whole restore so the caller can retry with a
// different snapshot.
func (a *Application) ApplySnapshotChunk(_ context.Context, req *abcitypes.RequestApplySnapshotChunk) (*abcitypes.ResponseApplySnapshotChunk, error) {
	if a.restoring == nil {
		return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ABORT}, nil
	}

	a.restoring.chunks[req.Index] = req.Chunk
	if uint32(len(a.restoring.chunks)) < a.restoring.totalChunks {
		return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ACCEPT}, nil
	}

	var full []byte
	for i := uint32(0); i < a.restoring.totalChunks; i++ {
		chunk, ok := a.restoring.chunks[i]
		if !ok {
			return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ABORT}, nil
		}
		full = append(full, chunk...)
	}

	if err := a.tree.Import(full); err != nil {
		a.restoring = nil
		return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ABORT}, nil
	}
	hash, version, err := a.tree.SaveVersion()
	if err != nil {
		a.restoring = nil
		return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ABORT}, nil
	}
	if string(hash) != string(a.restoring.expectedHash) {
		a.restoring = nil
		return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_REJECT_SNAPSHOT}, nil
	}

	a.height = version
	a.restoring = nil
	return &abcitypes.ResponseApplySnapshotChunk{Result: abcitypes.ResponseApplySnapshotChunk_ACCEPT}, nil
}
