package merkle

import "cosmossdk.io/errors"

const ModuleName = "merkle"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrUnsupported       = errors.Register(errCodespace, 1, "operation unsupported on this backing store variant")
	ErrProofVerification = errors.Register(errCodespace, 2, "proof failed to verify against the expected root")
	ErrLabelMismatch     = errors.Register(errCodespace, 3, "outer label binding does not match application hash")
)
