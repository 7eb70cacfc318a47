/*
Package cmd implements corestate's command-line interface.

This module defines commands to manage a corestate ABCI application server
and to sign, broadcast, and query Accounts transactions against it.

# Commands

  - `corestate start`: run the ABCI application server.
  - `corestate reset`: wipe a node's local data directory.
  - `corestate tx sign`: sign a Transfer call, optionally broadcasting it.
  - `corestate query`: query an account balance.
  - `corestate info`: print the current node's ABCI info.
  - `corestate version`: print the version number.

# Examples

	corestate start --home /tmp/.corestate --socket unix://corestate.sock
	corestate version
	corestate info --home /tmp/.corestate
	corestate tx sign --to ADDRESS_HEX --amount 1000 --commit
	corestate query --address ADDRESS_HEX
*/
package cmd
