package state

import "cosmossdk.io/errors"

const ModuleName = "state"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrUnexpectedVersion = errors.Register(errCodespace, 1, "unexpected version byte")
	ErrMigrationMissing  = errors.Register(errCodespace, 2, "no migration registered for version")
	ErrEOF               = errors.Register(errCodespace, 3, "end of record while decoding state")
)
