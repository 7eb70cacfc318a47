package coins

import "cosmossdk.io/errors"

const ModuleName = "coins"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrInsufficientFunds = errors.Register(errCodespace, 1, "insufficient funds")
	ErrOverflow          = errors.Register(errCodespace, 2, "amount overflow")
	ErrDivideByZero      = errors.Register(errCodespace, 3, "divide by zero")
	ErrNegative          = errors.Register(errCodespace, 4, "amounts may not be negative")
	ErrInvalidAddress    = errors.Register(errCodespace, 5, "invalid address")
	ErrInvalidSymbol     = errors.Register(errCodespace, 6, "invalid coin symbol")
)
