package client

import (
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// Transport is how the client loop reaches a remote node: Query answers a
// raw or typed query with a partial store of proven state, and Call submits
// a signed transaction for inclusion. Implementations typically wrap an
// ABCI RPC client (tendermint/rpc) dialed against a validator or full node.
type Transport interface {
	Query(q query.Query) (store.Store, error)
	Call(raw []byte) error
}
