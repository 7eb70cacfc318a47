package merkle

import (
	"github.com/statesmith/corestate/store"
)

// LoadProof verifies every entry in a CombinedProof against root and loads
// the authenticated results into dest, a client-side partial view. Keys
// proven present are recorded with their value; keys proven absent are
// recorded as known-absent. This is the "proof_verifier" backing-store
// variant of §4.1 taking concrete shape as a populated PartialMapStore.
func LoadProof(p *CombinedProof, root []byte, values map[string][]byte, dest *store.PartialMapStore) error {
	if err := VerifyLabelBinding(p, Label, root); err != nil {
		return err
	}
	for key, proof := range p.Proofs {
		value, present := values[key]
		if present {
			if !VerifyMembership(proof, root, []byte(key), value) {
				return ErrProofVerification
			}
			dest.SetKnown([]byte(key), value)
			continue
		}
		if !VerifyNonMembership(proof, root, []byte(key)) {
			return ErrProofVerification
		}
		dest.SetKnown([]byte(key), nil)
	}
	return nil
}
