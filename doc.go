/*
Package main implements corestate, a BFT application framework node.

# Motivation

corestate is a Go application built on [CometBFT]. It runs application
logic against an authenticated merkle state tree behind a fixed plugin
pipeline (chain-id, sdk-compat, signer, nonce, fee, query, application),
providing:

  - deterministic, versioned application state with ICS-23 proofs ; and
  - a signer-agnostic transaction pipeline accepting native, ADR-36,
    Cosmos-SDK amino, and Ethereum personal_sign signatures ; and
  - state-sync snapshotting and a supervised consensus engine child
    process pinned to a verified binary.

corestate is built using the [cobra] command-line utility software.

By default, the main function runs the rootCmd from `cmd/root.go`, whose
`start` subcommand brings up the ABCI application server and asks the
operator for a password to decrypt the node identity.

# Examples

	corestate start --home=/tmp/.corestate --socket=unix://corestate.sock
	corestate version
	corestate info --home=/tmp/.corestate
	corestate tx sign --to ADDRESS_HEX --amount 1000 --commit
	corestate query --address ADDRESS_HEX

# Commands

  - `corestate start`: default ABCI application server startup.
  - `corestate reset`: wipe a node's local data directory.
  - `corestate tx sign`: create a digitally signed Transfer call.
  - `corestate version`: print the version number.
  - `corestate info`: print the current node's ABCI information.
  - `corestate query`: query an account's balance.

[cobra]: https://github.com/spf13/cobra
[CometBFT]: https://github.com/cometbft/cometbft
*/
package main
