package query

import (
	"bytes"

	"github.com/statesmith/corestate/encoding"
)

// Kind tags which variant of Query this is.
type Kind uint8

const (
	KindField  Kind = iota // descend into a named field
	KindMethod             // invoke a read-only method
	KindRawKey             // fetch the raw value at an absolute store key
	KindRawNext            // fetch the raw next-entry after an absolute key
	KindRawPrev            // fetch the raw prev-entry before an absolute key
)

// Query mirrors call.Call's shape for the read-only side, plus the raw
// variants the client execution loop (package client) issues directly when
// it only has a missing-key error and no typed trace to resolve (§4.4).
type Query struct {
	Kind  Kind
	Index byte   // set for KindField/KindMethod
	Inner *Query // set iff Kind == KindField
	Args  []byte // set iff Kind == KindMethod
	Key   []byte // set iff Kind is one of the Raw* variants
}

func Field(index byte, inner Query) Query {
	return Query{Kind: KindField, Index: index, Inner: &inner}
}

func Method(index byte, args []byte) Query {
	return Query{Kind: KindMethod, Index: index, Args: args}
}

func RawKey(key []byte) Query { return Query{Kind: KindRawKey, Key: key} }

func RawNext(key []byte) Query { return Query{Kind: KindRawNext, Key: key} }

func RawPrev(key []byte) Query { return Query{Kind: KindRawPrev, Key: key} }

// Encode serializes a Query to its wire form.
func Encode(q Query) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(q.Kind))
	switch q.Kind {
	case KindField:
		buf.WriteByte(q.Index)
		encoding.WriteBytes(&buf, Encode(*q.Inner))
	case KindMethod:
		buf.WriteByte(q.Index)
		encoding.WriteBytes(&buf, q.Args)
	case KindRawKey, KindRawNext, KindRawPrev:
		encoding.WriteBytes(&buf, q.Key)
	}
	return buf.Bytes()
}

// Decode parses a Query from its wire form.
func Decode(b []byte) (Query, error) {
	kind, b, err := encoding.ReadU8(b)
	if err != nil {
		return Query{}, err
	}
	switch Kind(kind) {
	case KindField:
		index, b, err := encoding.ReadU8(b)
		if err != nil {
			return Query{}, err
		}
		payload, _, err := encoding.ReadBytes(b)
		if err != nil {
			return Query{}, err
		}
		inner, err := Decode(payload)
		if err != nil {
			return Query{}, err
		}
		return Field(index, inner), nil
	case KindMethod:
		index, b, err := encoding.ReadU8(b)
		if err != nil {
			return Query{}, err
		}
		payload, _, err := encoding.ReadBytes(b)
		if err != nil {
			return Query{}, err
		}
		return Method(index, payload), nil
	case KindRawKey, KindRawNext, KindRawPrev:
		key, _, err := encoding.ReadBytes(b)
		if err != nil {
			return Query{}, err
		}
		switch Kind(kind) {
		case KindRawNext:
			return RawNext(key), nil
		case KindRawPrev:
			return RawPrev(key), nil
		default:
			return RawKey(key), nil
		}
	default:
		return Query{}, ErrUnknownKind
	}
}
