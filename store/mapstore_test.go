package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapStoreGetPutDelete(t *testing.T) {
	s := NewMapStore()
	v, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	v, err = s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)

	require.NoError(t, s.Delete([]byte("a")))
	v, err = s.Get([]byte("a"))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestMapStoreNeighbours(t *testing.T) {
	s := NewMapStore()
	for _, k := range []string{"a", "c", "e"} {
		require.NoError(t, s.Put([]byte(k), []byte(k)))
	}

	next, err := s.GetNext([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("c"), next.Key)

	prev, err := s.GetPrev([]byte("e"))
	require.NoError(t, err)
	require.Equal(t, []byte("c"), prev.Key)

	greatest, err := s.GetPrev(nil)
	require.NoError(t, err)
	require.Equal(t, []byte("e"), greatest.Key)

	none, err := s.GetNext([]byte("e"))
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestMapStoreClone(t *testing.T) {
	s := NewMapStore()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	clone := s.Clone()
	require.NoError(t, clone.Put([]byte("b"), []byte("2")))

	_, err := s.Get([]byte("b"))
	require.NoError(t, err)
	require.False(t, s.Has([]byte("b")))
	require.True(t, clone.Has([]byte("b")))
}

func TestNullStoreAlwaysEmpty(t *testing.T) {
	var n NullStore
	v, err := n.Get([]byte("x"))
	require.NoError(t, err)
	require.Nil(t, v)
	require.ErrorIs(t, n.Put([]byte("x"), []byte("y")), ErrUnsupported)
}
