package encoding

import "cosmossdk.io/errors"

const ModuleName = "encoding"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	ErrUnexpectedEOF  = errors.Register(errCodespace, 1, "unexpected end of input")
	ErrLengthMismatch = errors.Register(errCodespace, 2, "length prefix does not match available data")
	ErrBadVarint      = errors.Register(errCodespace, 3, "malformed varint")
	ErrTrailingBytes  = errors.Register(errCodespace, 4, "trailing bytes after decode")
)
