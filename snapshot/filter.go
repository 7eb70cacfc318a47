package snapshot

// Filter decides when a snapshot at a given height should be created, and
// how long one already created should be kept around. A Manager may be
// configured with several filters; a height is snapshotted if any filter
// wants it, and a snapshot is kept if any filter still wants it kept.
type Filter interface {
	ShouldCreate(height uint64) bool
	ShouldKeep(snapshotHeight, currentHeight uint64) bool
}

// IntervalFilter creates a snapshot every Interval blocks and keeps the
// most recent Limit of them.
type IntervalFilter struct {
	Interval uint64
	Limit    uint64
}

// ShouldCreate reports whether height falls on the configured interval.
func (f IntervalFilter) ShouldCreate(height uint64) bool {
	return f.Interval > 0 && height%f.Interval == 0
}

// ShouldKeep reports whether snapshotHeight is still within the retention
// window measured from currentHeight.
func (f IntervalFilter) ShouldKeep(snapshotHeight, currentHeight uint64) bool {
	if f.Interval == 0 || snapshotHeight%f.Interval != 0 {
		return false
	}
	return currentHeight-snapshotHeight < f.Interval*f.Limit
}

// SpecificHeightFilter pins a single height to snapshot once and keep
// around, optionally until a cutoff height after which it too is pruned.
type SpecificHeightFilter struct {
	Height    uint64
	KeepUntil *uint64 // nil means keep forever
}

// ShouldCreate reports whether height is the pinned height.
func (f SpecificHeightFilter) ShouldCreate(height uint64) bool {
	return height == f.Height
}

// ShouldKeep reports whether snapshotHeight is the pinned height and, if a
// cutoff is set, that currentHeight hasn't passed it.
func (f SpecificHeightFilter) ShouldKeep(snapshotHeight, currentHeight uint64) bool {
	if snapshotHeight != f.Height {
		return false
	}
	if f.KeepUntil == nil {
		return true
	}
	return currentHeight < *f.KeepUntil
}
