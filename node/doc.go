// Package node wires an abci.Application to a running ABCI socket server:
// opening the node's leveldb, constructing the merkle tree and snapshot
// manager, reading the STOP_HEIGHT environment variable, and blocking
// until the process receives SIGTERM/SIGINT. It corresponds to the
// teacher's cmd/vstore.go Run closure, generalized away from a single
// hardcoded application.
package node
