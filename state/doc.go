// Package state implements the polymorphic State contract (§4.4 of the
// component design): a state object attaches to a store.View, flushes its
// self-bytes plus any subtree writes, and can be loaded back from bytes and
// a view. Composition is by declared field, each occupying the sub-prefix
// named by its positional index (I4).
package state
