package merkle

import (
	"bytes"

	dbm "github.com/cometbft/cometbft-db"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/iavl"

	"github.com/statesmith/corestate/store"
)

// DefaultCacheSize is the number of tree nodes iavl keeps hot in memory
// between commits.
const DefaultCacheSize = 100_000

// Tree is the node-side authoritative backing store: an iavl.MutableTree
// exposed through the store.Store contract. Writes are staged in the
// underlying tree's working set and only become part of a new root on
// SaveVersion, mirroring the copy-on-write discipline the rest of the stack
// expects from a backing store.
type Tree struct {
	tree *iavl.MutableTree
}

// NewTree opens (or creates) an iavl tree over db.
func NewTree(db dbm.DB, logger cmtlog.Logger) *Tree {
	mutableTree := iavl.NewMutableTree(db, DefaultCacheSize, false, logger)
	return &Tree{tree: mutableTree}
}

// LoadVersion loads the tree as of a specific committed version (0 loads the
// latest).
func (t *Tree) LoadVersion(version int64) (int64, error) {
	if version == 0 {
		return t.tree.LoadVersion(t.tree.Version())
	}
	return t.tree.LoadVersion(version)
}

// Get implements store.Reader. A node-side tree never returns a missing-key
// error — every key is either present or authoritatively absent.
func (t *Tree) Get(key []byte) ([]byte, error) {
	return t.tree.Get(key)
}

// GetNext implements store.Reader via a bounded ascending scan from key.
func (t *Tree) GetNext(key []byte) (*store.KV, error) {
	var found *store.KV
	_, err := t.tree.IterateRange(key, nil, true, func(k, v []byte) bool {
		if bytes.Equal(k, key) {
			return false
		}
		found = &store.KV{Key: append([]byte(nil), k...), Value: append([]byte(nil), v...)}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetPrev implements store.Reader via a bounded descending scan. A nil key
// requests the greatest key in the tree.
func (t *Tree) GetPrev(key []byte) (*store.KV, error) {
	var found *store.KV
	_, err := t.tree.IterateRange(nil, key, false, func(k, v []byte) bool {
		if key != nil && bytes.Equal(k, key) {
			return false
		}
		found = &store.KV{Key: append([]byte(nil), k...), Value: append([]byte(nil), v...)}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Put implements store.Writer.
func (t *Tree) Put(key, value []byte) error {
	_, err := t.tree.Set(key, value)
	return err
}

// Delete implements store.Writer.
func (t *Tree) Delete(key []byte) error {
	_, _, err := t.tree.Remove(key)
	return err
}

// SaveVersion commits the working set as a new tree version, returning its
// root hash and version number. This is what "flush the consensus_buf"
// ultimately bottoms out in at Commit (§4.6).
func (t *Tree) SaveVersion() (hash []byte, version int64, err error) {
	return t.tree.SaveVersion()
}

// RootHash returns the root hash of the latest saved version; writes made
// since the last SaveVersion are not reflected in it.
func (t *Tree) RootHash() []byte {
	return t.tree.Hash()
}

// Version returns the latest committed version number.
func (t *Tree) Version() int64 {
	return t.tree.Version()
}

var _ store.Store = (*Tree)(nil)
