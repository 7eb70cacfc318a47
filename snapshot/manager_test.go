package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndChunk(t *testing.T) {
	m := NewManager(IntervalFilter{Interval: 1000, Limit: 2})

	export := bytes.Repeat([]byte("x"), ChunkSize+10)
	m.Create(1000, []byte("root-1000"), export)

	s, ok := m.Get(1000)
	require.True(t, ok)
	require.Equal(t, uint32(2), s.ChunkCount())

	first, err := s.Chunk(0)
	require.NoError(t, err)
	require.Len(t, first, ChunkSize)

	second, err := s.Chunk(1)
	require.NoError(t, err)
	require.Len(t, second, 10)

	_, err = s.Chunk(2)
	require.ErrorIs(t, err, ErrChunkOutOfRange)
}

func TestManagerPrunesOutOfWindowSnapshots(t *testing.T) {
	m := NewManager(IntervalFilter{Interval: 1000, Limit: 1})

	m.Create(1000, []byte("r1"), []byte("a"))
	m.Create(2000, []byte("r2"), []byte("b"))

	_, ok := m.Get(1000)
	require.False(t, ok, "height 1000 should have been pruned once 2000 falls outside its window")
	_, ok = m.Get(2000)
	require.True(t, ok)
}

func TestManagerListAndLatest(t *testing.T) {
	m := NewManager(IntervalFilter{Interval: 1000, Limit: 5})
	m.Create(1000, []byte("r1"), []byte("a"))
	m.Create(2000, []byte("r2"), []byte("b"))

	height, latest, ok := m.Latest()
	require.True(t, ok)
	require.Equal(t, uint64(2000), height)
	require.Equal(t, []byte("r2"), latest.RootHash)

	list := m.List()
	require.Len(t, list, 2)
	require.Equal(t, uint64(2000), list[0].Height)
	require.Equal(t, uint64(1000), list[1].Height)
}

func TestManagerLoadChunkUnknownHeightReturnsEmpty(t *testing.T) {
	m := NewManager()
	chunk := m.LoadChunk(999, 0)
	require.Nil(t, chunk)
}

func TestManagerShouldCreateIgnoresHeightZero(t *testing.T) {
	m := NewManager(IntervalFilter{Interval: 1, Limit: 1})
	require.False(t, m.ShouldCreate(0))
	require.True(t, m.ShouldCreate(1))
}
