// Package describe implements the Descriptor graph: a load-time reflection
// structure that lets generic tooling (pretty-printers, JSON dumps) walk an
// arbitrary state subtree without a hand-written path per type. The client
// execution loop (package client) does not use it: it fetches raw keys and
// neighbours only, and does not map a traced method call back to the store
// prefix its receiver occupies.
package describe
