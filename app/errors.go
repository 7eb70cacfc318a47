package app

import "cosmossdk.io/errors"

// ModuleName is the error codespace for the app package.
const ModuleName = "app"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrUnsigned     = errors.Register(errCodespace, 1, "call requires a signer")
	ErrBadArguments = errors.Register(errCodespace, 2, "could not decode call arguments")
	ErrUnauthorized = errors.Register(errCodespace, 3, "signer is not authorized to perform this call")
)
