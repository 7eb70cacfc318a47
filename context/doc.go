// Package context implements the ambient context registry used by the
// plugin stack: a typed, process-scoped stack of values (Signer,
// Validators, Time, Events, Logs, Paid, ChainId) that a layer installs on
// entry and tears down on exit, in reverse order, including on failure.
//
// Unlike Go's standard context.Context, these are not request-scoped values
// threaded through a call chain; they model the source framework's
// thread-local Context::add/remove registry as an explicit, typed stack per
// kind, with push/pop discipline enforced by the caller through the pop
// function each Push returns.
package context
