// Package app is the reference application wired under the plugin stack's
// innermost layer: Accounts, a balances map keyed by address exposing
// Transfer and Mint as call methods and Balance as a query method. It
// exists to give abci.Factory a concrete implementation to build and to
// exercise the full stack end to end; it is not part of the framework
// proper.
package app
