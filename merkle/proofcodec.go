package merkle

import (
	"bytes"
	"sort"

	ics23 "github.com/confio/ics23/go"

	"github.com/statesmith/corestate/encoding"
)

// EncodeProof serializes a CombinedProof to its wire form: the label, the
// root it was built against, and every touched key's ICS-23 proof, framed
// the same length-prefixed way as every other corestate wire type. This is
// what the ABCI Query handler puts in a ResponseQuery's ProofOps and what a
// Transport decodes on the client side.
func EncodeProof(p *CombinedProof) ([]byte, error) {
	keys := make([]string, 0, len(p.Proofs))
	for key := range p.Proofs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	encoding.WriteBytes(&buf, []byte(p.Label))
	encoding.WriteBytes(&buf, p.Root)
	encoding.WriteUvarint(&buf, uint64(len(keys)))
	for _, key := range keys {
		proofBytes, err := p.Proofs[key].Marshal()
		if err != nil {
			return nil, err
		}
		encoding.WriteBytes(&buf, []byte(key))
		encoding.WriteBytes(&buf, proofBytes)
	}
	return buf.Bytes(), nil
}

// DecodeProof parses a CombinedProof from its wire form.
func DecodeProof(b []byte) (*CombinedProof, error) {
	label, b, err := encoding.ReadBytes(b)
	if err != nil {
		return nil, err
	}
	root, b, err := encoding.ReadBytes(b)
	if err != nil {
		return nil, err
	}
	count, b, err := encoding.ReadUvarint(b)
	if err != nil {
		return nil, err
	}

	proofs := make(map[string]*ics23.CommitmentProof, count)
	for i := uint64(0); i < count; i++ {
		key, rest, err := encoding.ReadBytes(b)
		if err != nil {
			return nil, err
		}
		data, rest, err := encoding.ReadBytes(rest)
		if err != nil {
			return nil, err
		}
		proof := &ics23.CommitmentProof{}
		if err := proof.Unmarshal(data); err != nil {
			return nil, err
		}
		proofs[string(key)] = proof
		b = rest
	}

	return &CombinedProof{Root: root, Proofs: proofs, Label: string(label)}, nil
}
