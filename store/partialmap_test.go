package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartialMapStoreMissingByDefault(t *testing.T) {
	p := NewPartialMapStore()
	_, err := p.Get([]byte("a"))
	require.Error(t, err)
	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
}

func TestPartialMapStoreSetKnown(t *testing.T) {
	p := NewPartialMapStore()
	p.SetKnown([]byte("a"), []byte("1"))
	p.SetKnown([]byte("absent"), nil)

	v, err := p.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)

	v, err = p.Get([]byte("absent"))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPartialMapStoreJoin(t *testing.T) {
	a := NewPartialMapStore()
	a.SetKnown([]byte("a"), []byte("1"))
	b := NewPartialMapStore()
	b.SetKnown([]byte("b"), []byte("2"))

	joined := a.Join(b)
	va, err := joined.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), va)

	vb, err := joined.Get([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), vb)
}

func TestPartialMapStoreReadOnly(t *testing.T) {
	p := NewPartialMapStore()
	require.ErrorIs(t, p.Put([]byte("a"), []byte("1")), ErrUnsupported)
	require.ErrorIs(t, p.Delete([]byte("a")), ErrUnsupported)
}
