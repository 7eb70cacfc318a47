package snapshot

import "cosmossdk.io/errors"

// ModuleName is the error codespace for the snapshot package.
const ModuleName = "snapshot"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	// ErrChunkOutOfRange is returned by Chunk for an index past the end of
	// the snapshot's chunk list.
	ErrChunkOutOfRange = errors.Register(errCodespace, 1, "chunk index out of range")
	// ErrSnapshotExists reports a snapshot already captured at a given
	// height. Manager.Create does not return it: a repeated height is a
	// no-op there.
	ErrSnapshotExists = errors.Register(errCodespace, 2, "a snapshot already exists at this height")
)
