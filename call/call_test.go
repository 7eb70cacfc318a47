package call

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMethodCall(t *testing.T) {
	c := Method(3, []byte("args"))
	decoded, err := Decode(Encode(c))
	require.NoError(t, err)
	require.Equal(t, c, decoded)
}

func TestEncodeDecodeNestedFieldCall(t *testing.T) {
	c := Field(1, Field(2, Method(0, []byte("x"))))
	decoded, err := Decode(Encode(c))
	require.NoError(t, err)
	require.Equal(t, c.Kind, decoded.Kind)
	require.Equal(t, c.Index, decoded.Index)
	require.Equal(t, *c.Inner.Inner, *decoded.Inner.Inner)
}

func TestDispatcherRoutesNestedCalls(t *testing.T) {
	var invoked []byte
	leaf := NewDispatcher().Method(0, func(args []byte) error {
		invoked = args
		return nil
	})
	root := NewDispatcher().Field(5, func() (*Dispatcher, error) {
		return leaf, nil
	})

	err := root.Dispatch(Field(5, Method(0, []byte("hello"))))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), invoked)
}

func TestDispatcherUnknownIndex(t *testing.T) {
	d := NewDispatcher()
	err := d.Dispatch(Method(9, nil))
	require.ErrorIs(t, err, ErrUnknownKind)
}
