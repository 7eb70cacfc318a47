package store

import "sort"

// keyRange is a half-open range [Lo, Hi) of keys known to be fully covered
// by a proof: every key in the range is known to be present-with-this-value
// or absent. A nil Hi means "to infinity".
type keyRange struct {
	Lo, Hi []byte
}

func (r keyRange) contains(key []byte) bool {
	if compareBytes(key, r.Lo) < 0 {
		return false
	}
	if r.Hi == nil {
		return true
	}
	return compareBytes(key, r.Hi) < 0
}

func compareBytes(a, b []byte) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// PartialMapStore is a client-side backing store assembled incrementally
// from proofs. Keys the store has not been told about return
// MissingKeyError/MissingNextError/MissingPrevError rather than absence, so
// the client execution loop knows to fetch more data.
type PartialMapStore struct {
	values map[string][]byte // value is nil for an authoritatively-absent key
	ranges []keyRange         // ranges covered by get-next/get-prev proofs
}

// NewPartialMapStore creates an empty partial view.
func NewPartialMapStore() *PartialMapStore {
	return &PartialMapStore{values: make(map[string][]byte)}
}

// Get implements Reader.
func (p *PartialMapStore) Get(key []byte) ([]byte, error) {
	v, ok := p.values[string(key)]
	if !ok {
		return nil, &MissingKeyError{Key: append([]byte(nil), key...)}
	}
	if v == nil {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// GetNext implements Reader.
func (p *PartialMapStore) GetNext(key []byte) (*KV, error) {
	for _, r := range p.ranges {
		if r.contains(key) || compareBytes(key, r.Lo) == 0 {
			// We know the range starting at/after key; scan known values
			// within the covered window for the smallest key > key.
			var best *KV
			for k, v := range p.values {
				kb := []byte(k)
				if compareBytes(kb, key) <= 0 || v == nil {
					continue
				}
				if !r.contains(kb) {
					continue
				}
				if best == nil || compareBytes(kb, best.Key) < 0 {
					best = &KV{Key: kb, Value: v}
				}
			}
			if best != nil {
				return &KV{Key: append([]byte(nil), best.Key...), Value: append([]byte(nil), best.Value...)}, nil
			}
			if r.Hi == nil {
				return nil, nil
			}
			return nil, nil
		}
	}
	return nil, &MissingNextError{Key: append([]byte(nil), key...)}
}

// GetPrev implements Reader. A nil key asks for the greatest known key.
func (p *PartialMapStore) GetPrev(key []byte) (*KV, error) {
	for _, r := range p.ranges {
		covers := (key == nil && r.Hi == nil) || (key != nil && r.contains(key))
		if !covers {
			continue
		}
		var best *KV
		for k, v := range p.values {
			kb := []byte(k)
			if v == nil {
				continue
			}
			if key != nil && compareBytes(kb, key) >= 0 {
				continue
			}
			if !r.contains(kb) {
				continue
			}
			if best == nil || compareBytes(kb, best.Key) > 0 {
				best = &KV{Key: kb, Value: v}
			}
		}
		if best != nil {
			return &KV{Key: append([]byte(nil), best.Key...), Value: append([]byte(nil), best.Value...)}, nil
		}
		return nil, nil
	}
	return nil, &MissingPrevError{Key: key}
}

// Put implements Writer; partial maps are read-only.
func (p *PartialMapStore) Put([]byte, []byte) error { return ErrUnsupported }

// Delete implements Writer; partial maps are read-only.
func (p *PartialMapStore) Delete([]byte) error { return ErrUnsupported }

// SetKnown records that key authoritatively has the given value (nil means
// "known absent"). Used while loading a verified proof into a partial view.
func (p *PartialMapStore) SetKnown(key, value []byte) {
	p.values[string(key)] = value
}

// SetRangeKnown records that the half-open range [lo, hi) has been fully
// authenticated by a proof (an absence proof bounds a gap between two
// neighbouring present keys).
func (p *PartialMapStore) SetRangeKnown(lo, hi []byte) {
	p.ranges = append(p.ranges, keyRange{Lo: lo, Hi: hi})
}

// Join merges two partial views, producing a new store whose known set is
// the union of both. Per §4.4, join is only ever called on same-kind stores.
func (p *PartialMapStore) Join(other *PartialMapStore) *PartialMapStore {
	out := NewPartialMapStore()
	for k, v := range p.values {
		out.values[k] = v
	}
	for k, v := range other.values {
		out.values[k] = v
	}
	out.ranges = append(append([]keyRange(nil), p.ranges...), other.ranges...)
	return out
}

// knownKeys returns the sorted set of keys with authoritatively-present
// values, for diagnostics and descriptor pretty-printing.
func (p *PartialMapStore) knownKeys() []string {
	keys := make([]string, 0, len(p.values))
	for k, v := range p.values {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var _ Store = (*PartialMapStore)(nil)
