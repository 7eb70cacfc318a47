package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadBytes(t *testing.T) {
	var buf bytes.Buffer
	WriteBytes(&buf, []byte("hello"))
	WriteBytes(&buf, []byte{})
	WriteBytes(&buf, []byte("world"))

	rest := buf.Bytes()
	var got [][]byte
	for len(rest) > 0 {
		var b []byte
		var err error
		b, rest, err = ReadBytes(rest)
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Equal(t, [][]byte{[]byte("hello"), {}, []byte("world")}, got)
}

func TestReadBytesTruncated(t *testing.T) {
	var buf bytes.Buffer
	WriteBytes(&buf, []byte("hello world"))
	truncated := buf.Bytes()[:2]
	_, _, err := ReadBytes(truncated)
	require.Error(t, err)
}

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	WriteU8(&buf, 7)
	WriteU16(&buf, 1000)
	WriteU32(&buf, 1<<20)
	WriteU64(&buf, 1<<40)

	b := buf.Bytes()
	u8, b, err := ReadU8(b)
	require.NoError(t, err)
	require.Equal(t, uint8(7), u8)

	u16, b, err := ReadU16(b)
	require.NoError(t, err)
	require.Equal(t, uint16(1000), u16)

	u32, b, err := ReadU32(b)
	require.NoError(t, err)
	require.Equal(t, uint32(1<<20), u32)

	u64, b, err := ReadU64(b)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), u64)
	require.Empty(t, b)
}

func TestBigEndianOrdersNumerically(t *testing.T) {
	var a, b bytes.Buffer
	WriteU64(&a, 5)
	WriteU64(&b, 6)
	require.True(t, bytes.Compare(a.Bytes(), b.Bytes()) < 0)
}
