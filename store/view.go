package store

// View is a prefix-scoped, clonable handle into a backing Store. All
// operations prepend View's prefix to user keys before delegating to the
// backing store; Sub extends the prefix for a nested state object. Per
// spec.md I4, a field declared at positional index i occupies the sub-tree
// at prefix (parent_prefix || i) — callers pass that single byte to Sub.
type View struct {
	backing Store
	prefix  []byte
}

// NewView wraps a backing store with an empty prefix — the root view.
func NewView(backing Store) View {
	return View{backing: backing}
}

// Sub returns a new View whose prefix is this view's prefix with pfx
// appended. The returned view shares the same backing store.
func (v View) Sub(pfx []byte) View {
	next := make([]byte, 0, len(v.prefix)+len(pfx))
	next = append(next, v.prefix...)
	next = append(next, pfx...)
	return View{backing: v.backing, prefix: next}
}

// Backing returns the underlying backing store, unprefixed.
func (v View) Backing() Store { return v.backing }

// Prefix returns this view's key prefix.
func (v View) Prefix() []byte { return append([]byte(nil), v.prefix...) }

func (v View) key(k []byte) []byte {
	out := make([]byte, 0, len(v.prefix)+len(k))
	out = append(out, v.prefix...)
	out = append(out, k...)
	return out
}

// Get implements Reader over the prefixed namespace.
func (v View) Get(key []byte) ([]byte, error) {
	val, err := v.backing.Get(v.key(key))
	if err != nil {
		return nil, unprefixErr(err, v.prefix)
	}
	return val, nil
}

// GetNext implements Reader over the prefixed namespace. Results outside the
// prefix (i.e. past the end of this sub-tree) are reported as absent.
func (v View) GetNext(key []byte) (*KV, error) {
	kv, err := v.backing.GetNext(v.key(key))
	if err != nil {
		return nil, unprefixErr(err, v.prefix)
	}
	if kv == nil || !hasPrefix(kv.Key, v.prefix) {
		return nil, nil
	}
	return &KV{Key: kv.Key[len(v.prefix):], Value: kv.Value}, nil
}

// GetPrev implements Reader over the prefixed namespace. A nil key requests
// the greatest key within this sub-tree (prefix's upper bound).
func (v View) GetPrev(key []byte) (*KV, error) {
	var lookupKey []byte
	if key == nil {
		lookupKey = prefixUpperBound(v.prefix)
	} else {
		lookupKey = v.key(key)
	}

	kv, err := v.backing.GetPrev(lookupKey)
	if err != nil {
		return nil, unprefixErr(err, v.prefix)
	}
	if kv == nil || !hasPrefix(kv.Key, v.prefix) {
		return nil, nil
	}
	return &KV{Key: kv.Key[len(v.prefix):], Value: kv.Value}, nil
}

// Put implements Writer over the prefixed namespace.
func (v View) Put(key, value []byte) error {
	return v.backing.Put(v.key(key), value)
}

// Delete implements Writer over the prefixed namespace.
func (v View) Delete(key []byte) error {
	return v.backing.Delete(v.key(key))
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// prefixUpperBound returns the smallest key that is strictly greater than
// every key with the given prefix, or nil if the prefix is all 0xff bytes
// (meaning "no finite upper bound", i.e. query to infinity).
func prefixUpperBound(prefix []byte) []byte {
	out := append([]byte(nil), prefix...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xff {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}

// unprefixErr strips a View's prefix back off a *Missing*Error's key so the
// error reports the caller's original (unprefixed) key.
func unprefixErr(err error, prefix []byte) error {
	switch e := err.(type) {
	case *MissingKeyError:
		return &MissingKeyError{Key: stripPrefix(e.Key, prefix)}
	case *MissingNextError:
		return &MissingNextError{Key: stripPrefix(e.Key, prefix)}
	case *MissingPrevError:
		if e.Key == nil {
			return e
		}
		return &MissingPrevError{Key: stripPrefix(e.Key, prefix)}
	default:
		return err
	}
}

func stripPrefix(key, prefix []byte) []byte {
	if hasPrefix(key, prefix) {
		return key[len(prefix):]
	}
	return key
}

var _ Store = View{}
