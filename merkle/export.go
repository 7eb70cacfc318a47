package merkle

import (
	"bytes"

	"github.com/statesmith/corestate/encoding"
)

// encodeExportPair appends one key/value pair's length-prefixed wire form to
// buf. Factored out of Export so the framing can be exercised by tests
// without an iavl tree behind it.
func encodeExportPair(buf *bytes.Buffer, key, value []byte) {
	encoding.WriteBytes(buf, key)
	encoding.WriteBytes(buf, value)
}

// decodeExportPairs parses an Export'd byte stream back into ordered
// key/value pairs.
func decodeExportPairs(export []byte) ([][2][]byte, error) {
	var pairs [][2][]byte
	rest := export
	for len(rest) > 0 {
		key, next, err := encoding.ReadBytes(rest)
		if err != nil {
			return nil, err
		}
		value, next, err := encoding.ReadBytes(next)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2][]byte{key, value})
		rest = next
	}
	return pairs, nil
}

// Export serializes the tree's full current contents as a flat, ordered
// sequence of length-prefixed key/value pairs: this is what package
// snapshot chunks for state-sync, since cosmos/iavl doesn't expose the
// lower-level node-chunk producer the original Rust implementation's `merk`
// library does (see the snapshot/ entry in DESIGN.md).
func (t *Tree) Export() ([]byte, error) {
	var buf bytes.Buffer
	_, err := t.tree.Iterate(func(key, value []byte) bool {
		encodeExportPair(&buf, key, value)
		return false
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import replays an Export'd byte stream into the tree's current working
// set. It does not save a version; the caller calls SaveVersion once all
// chunks have been applied.
func (t *Tree) Import(export []byte) error {
	pairs, err := decodeExportPairs(export)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		if _, err := t.tree.Set(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}
