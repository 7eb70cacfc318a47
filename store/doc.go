/*
Package store implements the lowest level of the corestate storage stack: a
polymorphic backing store over several concrete representations (an
in-memory ordered map, a partial map used on the client side, a null store,
and a copy-on-write write cache), plus the prefix-scoped View that namespaces
nested state objects into that store. The merkle-tree store and the proof
wrappers live in package merkle.

# Missing vs. absent

A store answers every read with one of three outcomes: the value is present,
the value is authoritatively absent, or the store simply doesn't know
(MissingKeyError and friends). The third case only ever arises on a
client-side partial view built from a proof that doesn't cover the requested
key — a node-side Merkle store never returns it. The client execution loop
(see package client) treats the missing case as an instruction to fetch more
proof and retry, not as a terminal error.

# Structures

  - [MapStore]: an in-memory map with a lazily sorted key index, usable as
    both node test fixture and client scratch space.
  - [PartialMapStore]: like MapStore, but tracks which key ranges are known
    vs. unknown, and supports Join with another PartialMapStore.
  - [NullStore]: always empty, always known; the default backing store
    before anything is attached.
  - [View]: a prefix-scoped handle into a Store.
*/
package store
