// Package store implements the backing-store abstraction: an ordered
// key/value map with neighbour lookup, and the concrete variants (in-memory,
// partial, null, write-cache) that compose to form the node's and the
// client's views of state; the merkle-backed and proof variants live in
// package merkle.
package store

import (
	errors "cosmossdk.io/errors"
)

// ModuleName is the error codespace for the store package.
const ModuleName = "store"

var errCodespace = errors.RegisterCodespace(ModuleName)

var (
	// ErrReadUnknown signals that a key's value could not be determined from
	// the data available to this store. On the node this never happens; on a
	// client-side partial view it means "fetch more proof".
	ErrReadUnknown = errors.Register(errCodespace, 1, "key is not known to this store")
	// ErrGetNextUnknown is the get-next counterpart of ErrReadUnknown.
	ErrGetNextUnknown = errors.Register(errCodespace, 2, "next-key is not known to this store")
	// ErrGetPrevUnknown is the get-prev counterpart of ErrReadUnknown.
	ErrGetPrevUnknown = errors.Register(errCodespace, 3, "prev-key is not known to this store")
	// ErrUnsupported is returned by mutation methods on read-only variants.
	ErrUnsupported = errors.Register(errCodespace, 4, "operation not supported by this store variant")
	// ErrJoinMismatch reports a join of two incompatible store kinds.
	// PartialMapStore.Join accepts only another PartialMapStore and never
	// returns it.
	ErrJoinMismatch = errors.Register(errCodespace, 5, "cannot join stores of different backing kinds")
)

// MissingKeyError carries the key that a Read-Unknown failure concerns, so
// callers (notably the client execution loop) can turn it into a fetch.
type MissingKeyError struct {
	Key []byte
}

func (e *MissingKeyError) Error() string { return ErrReadUnknown.Error() }
func (e *MissingKeyError) Unwrap() error { return ErrReadUnknown }

// MissingNextError is the get-next analogue of MissingKeyError.
type MissingNextError struct {
	Key []byte
}

func (e *MissingNextError) Error() string { return ErrGetNextUnknown.Error() }
func (e *MissingNextError) Unwrap() error { return ErrGetNextUnknown }

// MissingPrevError is the get-prev analogue of MissingKeyError. Key is nil
// when the caller asked for the greatest key in the store.
type MissingPrevError struct {
	Key []byte
}

func (e *MissingPrevError) Error() string { return ErrGetPrevUnknown.Error() }
func (e *MissingPrevError) Unwrap() error { return ErrGetPrevUnknown }
