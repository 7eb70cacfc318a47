package encoding

import (
	"bytes"
	"encoding/binary"
)

// WriteBytes appends a varint length prefix followed by b to buf, matching
// the size-prefixed framing used throughout the wire format.
func WriteBytes(buf *bytes.Buffer, b []byte) {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(lenBuf[:], int64(len(b)))
	buf.Write(lenBuf[:n])
	buf.Write(b)
}

// ReadBytes reads a varint-length-prefixed byte string from the front of b,
// returning the decoded bytes and the remainder of b.
func ReadBytes(b []byte) (out, rest []byte, err error) {
	n, size := binary.Varint(b)
	if size <= 0 {
		return nil, nil, ErrBadVarint
	}
	if n < 0 {
		return nil, nil, ErrBadVarint
	}
	b = b[size:]
	if int64(len(b)) < n {
		return nil, nil, ErrUnexpectedEOF
	}
	return b[:n], b[n:], nil
}

// WriteUvarint appends n as an unsigned varint.
func WriteUvarint(buf *bytes.Buffer, n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	size := binary.PutUvarint(tmp[:], n)
	buf.Write(tmp[:size])
}

// ReadUvarint reads an unsigned varint from the front of b.
func ReadUvarint(b []byte) (n uint64, rest []byte, err error) {
	n, size := binary.Uvarint(b)
	if size <= 0 {
		return 0, nil, ErrBadVarint
	}
	return n, b[size:], nil
}

// WriteU8/U16/U32/U64 append big-endian fixed-width integers; corestate
// always writes integers big-endian so that byte-wise key comparison orders
// numerically, a requirement for ordered map fields such as nonces.

func WriteU8(buf *bytes.Buffer, v uint8) { buf.WriteByte(v) }

func ReadU8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, ErrUnexpectedEOF
	}
	return b[0], b[1:], nil
}

func WriteU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func ReadU16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint16(b), b[2:], nil
}

func WriteU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func ReadU32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

func WriteU64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func ReadU64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint64(b), b[8:], nil
}
