package store

import "sort"

// WriteCache is a copy-on-write overlay on top of a base Store: reads fall
// through to base when not present locally, writes and deletes are buffered
// until Flush. This is the "mempool_buf" / "consensus_buf" mechanism (§4.6)
// and the per-call atomicity buffer of step_atomic (§4.7): on success the
// cache is flushed into its base, on failure it is simply discarded.
type WriteCache struct {
	base    Store
	overlay map[string][]byte // nil value = buffered delete
	dirty   map[string]bool
}

// NewWriteCache creates a cache layered on top of base. base may itself be
// another WriteCache, allowing nested buffers (mempool_buf layered over the
// persistent store, consensus_buf layered separately over the same base).
func NewWriteCache(base Store) *WriteCache {
	return &WriteCache{base: base, overlay: make(map[string][]byte), dirty: make(map[string]bool)}
}

// Get implements Reader: checks the overlay first, falling through to base.
func (c *WriteCache) Get(key []byte) ([]byte, error) {
	if v, ok := c.overlay[string(key)]; ok {
		if v == nil {
			return nil, nil
		}
		return append([]byte(nil), v...), nil
	}
	return c.base.Get(key)
}

// GetNext implements Reader by merging overlay and base neighbours and
// picking the smallest key strictly greater than key, honouring buffered
// deletes and respecting the missing-key contract of the base store.
func (c *WriteCache) GetNext(key []byte) (*KV, error) {
	baseKV, err := c.base.GetNext(key)
	if err != nil {
		return nil, err
	}
	// Advance past any base result shadowed by a buffered delete.
	for baseKV != nil {
		if v, ok := c.overlay[string(baseKV.Key)]; ok && v == nil {
			baseKV, err = c.base.GetNext(baseKV.Key)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	var best *KV
	if baseKV != nil {
		best = &KV{Key: baseKV.Key, Value: baseKV.Value}
	}
	for k, v := range c.overlay {
		if v == nil {
			continue
		}
		kb := []byte(k)
		if compareBytes(kb, key) <= 0 {
			continue
		}
		if best == nil || compareBytes(kb, best.Key) < 0 {
			best = &KV{Key: kb, Value: v}
		}
	}
	if best == nil {
		return nil, nil
	}
	return &KV{Key: append([]byte(nil), best.Key...), Value: append([]byte(nil), best.Value...)}, nil
}

// GetPrev implements Reader, symmetric to GetNext.
func (c *WriteCache) GetPrev(key []byte) (*KV, error) {
	baseKV, err := c.base.GetPrev(key)
	if err != nil {
		return nil, err
	}
	for baseKV != nil {
		if v, ok := c.overlay[string(baseKV.Key)]; ok && v == nil {
			baseKV, err = c.base.GetPrev(baseKV.Key)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	var best *KV
	if baseKV != nil {
		best = &KV{Key: baseKV.Key, Value: baseKV.Value}
	}
	for k, v := range c.overlay {
		if v == nil {
			continue
		}
		kb := []byte(k)
		if key != nil && compareBytes(kb, key) >= 0 {
			continue
		}
		if best == nil || compareBytes(kb, best.Key) > 0 {
			best = &KV{Key: kb, Value: v}
		}
	}
	if best == nil {
		return nil, nil
	}
	return &KV{Key: append([]byte(nil), best.Key...), Value: append([]byte(nil), best.Value...)}, nil
}

// Put implements Writer by buffering the write.
func (c *WriteCache) Put(key, value []byte) error {
	c.overlay[string(key)] = append([]byte(nil), value...)
	c.dirty[string(key)] = true
	return nil
}

// Delete implements Writer by buffering a tombstone.
func (c *WriteCache) Delete(key []byte) error {
	c.overlay[string(key)] = nil
	c.dirty[string(key)] = true
	return nil
}

// Flush writes every buffered change through to base, in key order, and
// clears the overlay. Per §4.7, this is only ever called after fn succeeds.
func (c *WriteCache) Flush() error {
	keys := make([]string, 0, len(c.overlay))
	for k := range c.overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := c.overlay[k]
		if v == nil {
			if err := c.base.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := c.base.Put([]byte(k), v); err != nil {
			return err
		}
	}
	c.overlay = make(map[string][]byte)
	c.dirty = make(map[string]bool)
	return nil
}

// Discard drops every buffered change without touching base, used on the
// error path of step_atomic.
func (c *WriteCache) Discard() {
	c.overlay = make(map[string][]byte)
	c.dirty = make(map[string]bool)
}

var _ Store = (*WriteCache)(nil)
var _ Flusher = (*WriteCache)(nil)
