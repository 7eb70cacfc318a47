package call

import "cosmossdk.io/errors"

const ModuleName = "call"

var errCodespace = errors.RegisterCodespace(ModuleName)

// ErrUnknownKind is returned when decoding a Call whose kind tag is neither
// KindField nor KindMethod.
var ErrUnknownKind = errors.Register(errCodespace, 1, "unknown call kind")
