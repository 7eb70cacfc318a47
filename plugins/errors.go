package plugins

import "cosmossdk.io/errors"

const ModuleName = "plugins"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrChainIDMismatch     = errors.Register(errCodespace, 1, "signature was not produced against the configured chain id")
	ErrSdkCompatDecode     = errors.Register(errCodespace, 2, "could not decode sdk-compat transaction")
	ErrSignerMissing       = errors.Register(errCodespace, 3, "call requires a signature")
	ErrSignerInvalid       = errors.Register(errCodespace, 4, "signature verification failed")
	ErrNonceContext        = errors.Register(errCodespace, 5, "nonce plugin could not resolve the signer context")
	ErrNonceInvalid        = errors.Register(errCodespace, 6, "nonce is not valid")
	ErrNonceIncreaseTooBig = errors.Register(errCodespace, 7, "nonce increase is too large")
	ErrNonceRequired       = errors.Register(errCodespace, 8, "signed calls must include a nonce")
	ErrNonceForbidden      = errors.Register(errCodespace, 9, "unsigned calls must not include a nonce")
	ErrFeeInsufficient     = errors.Register(errCodespace, 10, "insufficient fee paid")
	ErrFeeSymbolMismatch   = errors.Register(errCodespace, 11, "fee was not paid in the required symbol")
	ErrUnknownABCIKind     = errors.Register(errCodespace, 12, "unknown abci dispatch kind")
)
