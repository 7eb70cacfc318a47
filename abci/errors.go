package abci

import "cosmossdk.io/errors"

// ModuleName is the error codespace for the abci package.
const ModuleName = "abci"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	// ErrUnknownOperator is returned when a voting-power update is keyed by
	// an operator address with no registered consensus key.
	ErrUnknownOperator = errors.Register(errCodespace, 1, "no consensus key registered for operator address")
	// ErrNoValidatorsContext is returned by SetVotingPowerByOperator when
	// called outside a Dispatch call (no ambient Validators collector
	// installed).
	ErrNoValidatorsContext = errors.Register(errCodespace, 2, "no validators context installed")
)

// ABCI response codes. CodeTypeOK must be zero per the ABCI convention that
// a zero code means success.
const (
	CodeTypeOK    uint32 = 0
	CodeTypeError uint32 = 1
)
