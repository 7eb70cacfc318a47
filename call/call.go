package call

import (
	"bytes"

	"github.com/statesmith/corestate/encoding"
)

// Kind tags which variant of Call this is.
type Kind uint8

const (
	// KindField descends into a named sub-object before continuing.
	KindField Kind = iota
	// KindMethod invokes a terminal method on the current receiver.
	KindMethod
)

// Call is the tagged union `{ field(index, inner) | method(index, args) }`
// from §3.1: a Field call carries the next nested Call in Inner; a Method
// call carries raw argument bytes for the addressed method to decode.
type Call struct {
	Kind  Kind
	Index byte
	Inner *Call  // set iff Kind == KindField
	Args  []byte // set iff Kind == KindMethod
}

// Field constructs a field-descent call.
func Field(index byte, inner Call) Call {
	return Call{Kind: KindField, Index: index, Inner: &inner}
}

// Method constructs a terminal method call.
func Method(index byte, args []byte) Call {
	return Call{Kind: KindMethod, Index: index, Args: args}
}

// Encode serializes a Call to its wire form: a one-byte kind tag, the index,
// and either the recursively-encoded inner call or length-prefixed args.
func Encode(c Call) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(c.Kind))
	buf.WriteByte(c.Index)
	switch c.Kind {
	case KindField:
		encoding.WriteBytes(&buf, Encode(*c.Inner))
	case KindMethod:
		encoding.WriteBytes(&buf, c.Args)
	}
	return buf.Bytes()
}

// Decode parses a Call from its wire form.
func Decode(b []byte) (Call, error) {
	kind, b, err := encoding.ReadU8(b)
	if err != nil {
		return Call{}, err
	}
	index, b, err := encoding.ReadU8(b)
	if err != nil {
		return Call{}, err
	}
	payload, _, err := encoding.ReadBytes(b)
	if err != nil {
		return Call{}, err
	}

	switch Kind(kind) {
	case KindField:
		inner, err := Decode(payload)
		if err != nil {
			return Call{}, err
		}
		return Field(index, inner), nil
	case KindMethod:
		return Method(index, payload), nil
	default:
		return Call{}, ErrUnknownKind
	}
}
