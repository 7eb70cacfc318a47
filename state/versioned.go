package state

import (
	"github.com/statesmith/corestate/encoding"
	"github.com/statesmith/corestate/store"
)

// MigrationStep upgrades one version's field bytes to the next, with access
// to the view for re-keying or rewriting tree-resident children.
type MigrationStep func(view store.View, prevFields []byte) (fields []byte, err error)

// VersionedLoader chains a type's per-version migrations to bring any
// on-disk version forward to CurrentVersion, per I3 (migration is
// monotone — never reversed) and §4.2 (migrations flush immediately,
// establishing a uniform on-disk version).
type VersionedLoader struct {
	CurrentVersion uint8
	Steps          map[uint8]MigrationStep
	// LegacyCompat, when true, treats unversioned data (no leading version
	// byte) as bare version-0 field bytes instead of a decode error. It
	// takes effect only when CurrentVersion is 0 and no Steps are
	// registered; otherwise the leading byte is always read as a version.
	// This is a startup flag (§4.2), never flipped mid-run.
	LegacyCompat bool
}

// Load decodes raw, applying whatever migration chain is needed to reach
// CurrentVersion, and reports whether a migration actually ran (callers use
// this to decide whether to immediately re-flush at the new version).
func (l VersionedLoader) Load(view store.View, raw []byte) (fields []byte, migrated bool, err error) {
	version, fields, err := l.splitVersion(raw)
	if err != nil {
		return nil, false, err
	}
	if version > l.CurrentVersion {
		return nil, false, ErrUnexpectedVersion
	}
	for version < l.CurrentVersion {
		step, ok := l.Steps[version]
		if !ok {
			return nil, false, ErrMigrationMissing
		}
		fields, err = step(view, fields)
		if err != nil {
			return nil, false, err
		}
		version++
		migrated = true
	}
	return fields, migrated, nil
}

func (l VersionedLoader) splitVersion(raw []byte) (uint8, []byte, error) {
	if l.LegacyCompat && len(l.Steps) == 0 && l.CurrentVersion == 0 {
		return 0, raw, nil
	}
	version, rest, err := encoding.SplitVersion(raw)
	if err != nil {
		return 0, nil, ErrEOF
	}
	return version, rest, nil
}

// Encode prepends the current version byte to fields, producing the
// on-disk record for Flush.
func (l VersionedLoader) Encode(fields []byte) []byte {
	return encoding.PrependVersion(l.CurrentVersion, fields)
}
