package state

import "github.com/statesmith/corestate/store"

// State is implemented by every node in the state tree. Create (via a
// type's own constructor, not part of this interface) takes a view and
// decoded self-bytes; Flush is the inverse: it writes any tree-resident
// mutations through the view and returns the self-bytes the parent should
// store at its own key. Per I2, Load(view, Flush()) must round-trip to an
// equal value with no observable change to the store.
type State interface {
	// Flush persists pending writes to children addressed through the
	// view this value was attached to, and returns this value's own
	// encoded bytes (without a child's positional prefix — the caller adds
	// that).
	Flush() ([]byte, error)
}

// Attacher is implemented by state objects that must bind to their store
// view before use (e.g. to construct lazy child handles). Leaf types that
// need no view may skip this.
type Attacher interface {
	Attach(view store.View) error
}

// Migratable is implemented by a state type that has more than one
// on-disk version. MigrateFrom upgrades fields encoded one version below
// this type's current version; view grants access to re-key or rewrite
// tree-resident children during the upgrade, per §4.2.
type Migratable interface {
	MigrateFrom(view store.View, prevVersion uint8, prevFields []byte) (fields []byte, err error)
}
