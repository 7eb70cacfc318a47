package driver

import "cosmossdk.io/errors"

// ModuleName is the error codespace for the driver package.
const ModuleName = "driver"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	// ErrAlreadyStarted is returned by Start if the driver's process has
	// already been spawned.
	ErrAlreadyStarted = errors.Register(errCodespace, 1, "consensus driver process already started")
	// ErrNotStarted is returned by Wait/Stop if the process hasn't been
	// spawned yet.
	ErrNotStarted = errors.Register(errCodespace, 2, "consensus driver process not yet started")
	// ErrHashMismatch is returned by VerifyBinary when the binary on disk
	// doesn't match the pinned digest.
	ErrHashMismatch = errors.Register(errCodespace, 3, "consensus binary does not match pinned digest")
)
