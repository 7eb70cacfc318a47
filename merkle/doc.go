// Package merkle wraps the authenticated Merkle/AVL tree that backs the
// node's persistent state (C1's "merkle" backing-store variant) and the
// ICS-23 proof machinery that authenticates reads for the client (C8): a
// proof-builder wrapper that records every key touched while serving a
// call, and a verifier that replays a proof against a known root hash.
//
// The Merkle tree implementation itself — an AVL-like authenticated tree —
// is out of scope for this runtime (§1); this package only wires a concrete
// one in and binds an outer application label over its root, so a single
// hash authenticates both the application tree and any sibling subtrees
// sharing the same underlying database (the "ibc" label binding of §3.1).
package merkle
