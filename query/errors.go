package query

import "cosmossdk.io/errors"

const ModuleName = "query"

var errCodespace = errors.RegisterCodespace(ModuleName)

var ErrUnknownKind = errors.Register(errCodespace, 1, "unknown query kind")
