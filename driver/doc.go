// Package driver supervises the consensus engine as a child process: it
// pins and verifies the binary by its SHA-256 digest, builds its argument
// list through a small builder API, edits its config.toml in place before
// each start, and forwards its raw stdout/stderr to whatever io.Writer the
// caller sets with Stdout/Stderr. It does not parse the engine's log lines
// into structured logger events.
//
// Nothing here talks ABCI — package abci owns the socket the consensus
// engine connects back to. Driver only owns the engine's lifecycle as an OS
// process.
package driver
