package state

import (
	"errors"
	"testing"

	"github.com/statesmith/corestate/store"
	"github.com/stretchr/testify/require"
)

func TestStepAtomicFlushesOnSuccess(t *testing.T) {
	base := store.NewMapStore()
	result, err := StepAtomic(base, func(cache *store.WriteCache) (int, error) {
		require.NoError(t, cache.Put([]byte("a"), []byte("1")))
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, result)
	require.True(t, base.Has([]byte("a")))
}

func TestStepAtomicDiscardsOnFailure(t *testing.T) {
	base := store.NewMapStore()
	_, err := StepAtomic(base, func(cache *store.WriteCache) (int, error) {
		require.NoError(t, cache.Put([]byte("a"), []byte("1")))
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	require.False(t, base.Has([]byte("a")))
}
