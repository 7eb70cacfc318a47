package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyLabelBindingRejectsWrongLabel(t *testing.T) {
	p := &CombinedProof{Root: []byte("root"), Label: "wrong"}
	err := VerifyLabelBinding(p, Label, []byte("root"))
	require.ErrorIs(t, err, ErrLabelMismatch)
}

func TestVerifyLabelBindingRejectsWrongRoot(t *testing.T) {
	p := &CombinedProof{Root: []byte("root-a"), Label: Label}
	err := VerifyLabelBinding(p, Label, []byte("root-b"))
	require.ErrorIs(t, err, ErrLabelMismatch)
}

func TestVerifyLabelBindingAccepts(t *testing.T) {
	p := &CombinedProof{Root: []byte("root"), Label: Label}
	require.NoError(t, VerifyLabelBinding(p, Label, []byte("root")))
}
