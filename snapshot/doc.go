// Package snapshot implements deterministic state-sync snapshots: periodic
// or height-triggered captures of the merkle tree's full contents, split
// into fixed-size chunks a syncing node requests one at a time and
// reassembles before importing.
//
// A Manager owns zero or more retained Snapshots, decides when a new one
// should be created (via SnapshotFilter) and when an old one should be
// pruned, and answers the ABCI ListSnapshots/LoadSnapshotChunk queries the
// abci package's Application forwards to it.
package snapshot
