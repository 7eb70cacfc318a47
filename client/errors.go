package client

import "cosmossdk.io/errors"

// ModuleName is the error codespace for the client package.
const ModuleName = "client"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	// ErrNoProgress is returned when a fetch would repeat a query already
	// issued during this execution, meaning the remote node's response
	// could not supply the missing data the local step needs.
	ErrNoProgress = errors.Register(errCodespace, 1, "execution did not advance")
	// ErrJoinMismatch mirrors store.ErrJoinMismatch for the case where a
	// query response arrives in a backing-store shape Execute cannot merge.
	ErrJoinMismatch = errors.Register(errCodespace, 2, "could not join mismatched store responses")
)
