package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoaderMigratesForward(t *testing.T) {
	// v0: {x: u8}. v1 adds {y: u8} defaulting to 0.
	loader := Loader{
		CurrentVersion: 1,
		Steps: map[uint8]StepFunc{
			0: func(prevFields []byte) ([]byte, error) {
				return append(append([]byte{}, prevFields...), 0), nil
			},
		},
	}

	raw := PrependVersion(0, []byte{42})
	fields, migrated, err := loader.Load(raw)
	require.NoError(t, err)
	require.True(t, migrated)
	require.Equal(t, []byte{42, 0}, fields)
}

func TestLoaderNoopAtCurrentVersion(t *testing.T) {
	loader := Loader{CurrentVersion: 1, Steps: map[uint8]StepFunc{}}
	raw := PrependVersion(1, []byte{1, 2, 3})
	fields, migrated, err := loader.Load(raw)
	require.NoError(t, err)
	require.False(t, migrated)
	require.Equal(t, []byte{1, 2, 3}, fields)
}

func TestLoaderMissingStepErrors(t *testing.T) {
	loader := Loader{CurrentVersion: 2, Steps: map[uint8]StepFunc{}}
	raw := PrependVersion(0, []byte{1})
	_, _, err := loader.Load(raw)
	require.Error(t, err)
}
