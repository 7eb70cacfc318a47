package merkle

import (
	"bytes"

	ics23 "github.com/confio/ics23/go"
)

// ProofSource is implemented by the node-side tree: it can produce an
// ICS-23 membership or non-membership proof for any key at the tree's
// current committed root.
type ProofSource interface {
	GetMembershipProof(key []byte) (*ics23.CommitmentProof, error)
	GetNonMembershipProof(key []byte) (*ics23.CommitmentProof, error)
}

// GetMembershipProof produces an ICS-23 existence proof for key at the
// tree's current root.
func (t *Tree) GetMembershipProof(key []byte) (*ics23.CommitmentProof, error) {
	return t.tree.GetMembershipProof(key)
}

// GetNonMembershipProof produces an ICS-23 absence proof for key at the
// tree's current root.
func (t *Tree) GetNonMembershipProof(key []byte) (*ics23.CommitmentProof, error) {
	return t.tree.GetNonMembershipProof(key)
}

var _ ProofSource = (*Tree)(nil)

// Label is the fixed string the outer proof binds the inner ICS-23 root to,
// so a single application hash authenticates both the application state
// tree and any sibling subtree sharing the label convention (§3.1, §6). The
// Cosmos ecosystem's own convention for this is the literal "ibc" store
// key; corestate reuses it so existing light-client proof verifiers need no
// special-casing.
const Label = "ibc"

// CombinedProof is the full proof served for a query: the inner ICS-23
// proofs for every key touched while answering it, plus the binding that
// bound the inner root into the outer application hash.
type CombinedProof struct {
	Root   []byte
	Proofs map[string]*ics23.CommitmentProof
	Label  string
}

// BuildProof produces a CombinedProof covering every key a ProofBuilder
// recorded, rooted at root.
func BuildProof(source ProofSource, root []byte, builder *ProofBuilder, presentKeys map[string][]byte) (*CombinedProof, error) {
	proofs := make(map[string]*ics23.CommitmentProof, len(builder.touched))
	for _, key := range builder.TouchedKeys() {
		var (
			proof *ics23.CommitmentProof
			err   error
		)
		if _, present := presentKeys[string(key)]; present {
			proof, err = source.GetMembershipProof(key)
		} else {
			proof, err = source.GetNonMembershipProof(key)
		}
		if err != nil {
			return nil, err
		}
		proofs[string(key)] = proof
	}
	return &CombinedProof{Root: root, Proofs: proofs, Label: Label}, nil
}

// VerifyMembership checks that key=value is proven present under proof's
// root, using the standard ICS-23 IAVL spec.
func VerifyMembership(proof *ics23.CommitmentProof, root, key, value []byte) bool {
	return ics23.VerifyMembership(ics23.IavlSpec, root, proof, key, value)
}

// VerifyNonMembership checks that key is proven absent under proof's root.
func VerifyNonMembership(proof *ics23.CommitmentProof, root, key []byte) bool {
	return ics23.VerifyNonMembership(ics23.IavlSpec, root, proof, key)
}

// VerifyLabelBinding checks that a CombinedProof's label matches the
// expected outer label before any inner proof is trusted — a proof for the
// wrong subtree must never be accepted just because its inner math
// verifies (§3.1).
func VerifyLabelBinding(p *CombinedProof, expectedLabel string, expectedRoot []byte) error {
	if p.Label != expectedLabel {
		return ErrLabelMismatch
	}
	if !bytes.Equal(p.Root, expectedRoot) {
		return ErrLabelMismatch
	}
	return nil
}
