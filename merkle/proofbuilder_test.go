package merkle

import (
	"testing"

	"github.com/statesmith/corestate/store"
	"github.com/stretchr/testify/require"
)

func TestProofBuilderRecordsTouchedKeys(t *testing.T) {
	backing := store.NewMapStore()
	require.NoError(t, backing.Put([]byte("a"), []byte("1")))
	require.NoError(t, backing.Put([]byte("c"), []byte("3")))

	builder := NewProofBuilder(backing)
	_, err := builder.Get([]byte("a"))
	require.NoError(t, err)
	_, err = builder.GetNext([]byte("a"))
	require.NoError(t, err)

	touched := builder.TouchedKeys()
	require.Len(t, touched, 2)
	require.Equal(t, []byte("a"), touched[0])
	require.Equal(t, []byte("c"), touched[1])
}

func TestProofBuilderRejectsWrites(t *testing.T) {
	builder := NewProofBuilder(store.NewMapStore())
	require.ErrorIs(t, builder.Put([]byte("a"), []byte("1")), ErrUnsupported)
	require.ErrorIs(t, builder.Delete([]byte("a")), ErrUnsupported)
}
