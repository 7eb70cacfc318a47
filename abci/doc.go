// Package abci adapts the fixed plugin stack (package plugins) to
// cometbft's ABCI 2.0 Application interface: it owns the node's
// authoritative merkle tree, the mempool_buf/consensus_buf copy-on-write
// buffers (§4.6), per-call atomicity via a disposable write-cache frame
// (§4.7), and wires package snapshot's chunked state-sync RPCs.
//
// The socket-server wiring that actually accepts cometbft's ABCI
// connection lives in package node (node/node.go), following the
// teacher's cmd/vstore.go pattern; this package only implements the
// Application contract itself.
package abci
