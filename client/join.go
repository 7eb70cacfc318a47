package client

import "github.com/statesmith/corestate/store"

// JoinStore merges a query response (src) into the client's accumulated
// partial view (dst). A NullStore on either side contributes nothing and is
// discarded in favor of the other; two PartialMapStores merge their known
// keys and ranges. Any other pairing means the transport returned a store
// kind Execute doesn't know how to reconcile.
func JoinStore(dst, src store.Store) (store.Store, error) {
	if _, ok := dst.(store.NullStore); ok {
		return src, nil
	}
	if _, ok := src.(store.NullStore); ok {
		return dst, nil
	}

	dstPartial, dstOK := dst.(*store.PartialMapStore)
	srcPartial, srcOK := src.(*store.PartialMapStore)
	if dstOK && srcOK {
		return dstPartial.Join(srcPartial), nil
	}

	return nil, ErrJoinMismatch
}
