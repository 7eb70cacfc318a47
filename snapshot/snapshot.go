package snapshot

// ChunkSize is the maximum size in bytes of one snapshot chunk. State-sync
// peers request chunks one at a time, so this bounds how much of a snapshot
// a single RPC round trip must carry.
const ChunkSize = 4 * 1024 * 1024

// Snapshot is a captured, chunkable export of the merkle tree's full
// contents at one height. Export is the deterministic serialized dump
// (package merkle's Tree.Export) this snapshot was built from; Snapshot
// itself only knows how to slice it into chunks and report identifying
// metadata, matching the ABCI Snapshot/LoadSnapshotChunk contract.
type Snapshot struct {
	Height   uint64
	RootHash []byte
	export   []byte
}

// New builds a Snapshot from a height, the tree's root hash at that height,
// and its full serialized export.
func New(height uint64, rootHash, export []byte) *Snapshot {
	return &Snapshot{
		Height:   height,
		RootHash: append([]byte(nil), rootHash...),
		export:   export,
	}
}

// ChunkCount reports how many ChunkSize-sized pieces the export splits
// into.
func (s *Snapshot) ChunkCount() uint32 {
	if len(s.export) == 0 {
		return 0
	}
	return uint32((len(s.export) + ChunkSize - 1) / ChunkSize)
}

// Chunk returns the index'th slice of the export.
func (s *Snapshot) Chunk(index uint32) ([]byte, error) {
	count := s.ChunkCount()
	if index >= count {
		return nil, ErrChunkOutOfRange
	}
	start := int(index) * ChunkSize
	end := start + ChunkSize
	if end > len(s.export) {
		end = len(s.export)
	}
	return s.export[start:end], nil
}

// Size returns the total length of the underlying export, before chunking.
func (s *Snapshot) Size() int { return len(s.export) }
