package state

import "github.com/statesmith/corestate/store"

// StepAtomic runs fn against a fresh write-cache layered over base: on
// success the cache is flushed into base and the result returned; on
// failure the cache is discarded and base is left untouched. This is the
// all-or-nothing execution primitive of §4.7; the abci package's
// Application uses its own unexported stepAtomic of the same shape.
func StepAtomic[T any](base store.Store, fn func(cache *store.WriteCache) (T, error)) (T, error) {
	cache := store.NewWriteCache(base)
	result, err := fn(cache)
	if err != nil {
		cache.Discard()
		var zero T
		return zero, err
	}
	if err := cache.Flush(); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
