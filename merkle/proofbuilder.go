package merkle

import (
	"sort"

	"github.com/statesmith/corestate/store"
)

// ProofBuilder wraps a read-only view of the authoritative tree and records
// every key it is asked to read. At the end of a call the node uses
// TouchedKeys to build the combined ICS-23 proof the client will verify
// (§4.1's "proof_builder" variant, §4.4's "I5: no dangling reads").
type ProofBuilder struct {
	inner   store.Reader
	touched map[string]struct{}
}

// NewProofBuilder wraps inner, which must be a read-only snapshot of the
// tree at the height being queried.
func NewProofBuilder(inner store.Reader) *ProofBuilder {
	return &ProofBuilder{inner: inner, touched: make(map[string]struct{})}
}

// Get implements store.Reader, recording key.
func (p *ProofBuilder) Get(key []byte) ([]byte, error) {
	p.touched[string(key)] = struct{}{}
	return p.inner.Get(key)
}

// GetNext implements store.Reader, recording both the queried key and the
// resulting neighbour (if any), since a correct absence proof for get_next
// must cover the gap up to that neighbour.
func (p *ProofBuilder) GetNext(key []byte) (*store.KV, error) {
	p.touched[string(key)] = struct{}{}
	kv, err := p.inner.GetNext(key)
	if err != nil {
		return nil, err
	}
	if kv != nil {
		p.touched[string(kv.Key)] = struct{}{}
	}
	return kv, nil
}

// GetPrev implements store.Reader, symmetric to GetNext.
func (p *ProofBuilder) GetPrev(key []byte) (*store.KV, error) {
	if key != nil {
		p.touched[string(key)] = struct{}{}
	}
	kv, err := p.inner.GetPrev(key)
	if err != nil {
		return nil, err
	}
	if kv != nil {
		p.touched[string(kv.Key)] = struct{}{}
	}
	return kv, nil
}

// Put is unsupported: a proof builder only ever wraps a read-only snapshot.
func (p *ProofBuilder) Put([]byte, []byte) error { return ErrUnsupported }

// Delete is unsupported, symmetric to Put.
func (p *ProofBuilder) Delete([]byte) error { return ErrUnsupported }

// TouchedKeys returns the sorted set of keys read so far.
func (p *ProofBuilder) TouchedKeys() [][]byte {
	keys := make([]string, 0, len(p.touched))
	for k := range p.touched {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

var _ store.Store = (*ProofBuilder)(nil)
