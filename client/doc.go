// Package client implements the proof-driven execution loop: running
// application code against a partial, client-held view of state, turning
// "missing key" errors into queries against a remote node, merging the
// resulting proofs into the partial view, and retrying until the call
// either completes or genuinely fails.
//
// Unlike the node, which always holds a complete merkle-backed store, a
// client only ever holds the slice of state its current call has touched.
// Step grows that slice one query at a time; Execute drives Step to
// completion and enforces that every iteration makes progress.
//
// RPCTransport is the Transport used against a real node: it asks for
// proofs on every query and verifies them against the app hash the chain
// itself committed before merging anything into the caller's store.
package client
