package encoding

// A state object whose wire encoding begins with a version byte is framed
// with SplitVersion/PrependVersion, which handle only that leading byte; the
// remaining "self bytes" are type-specific and handled by the caller
// (typically state.VersionedLoader and the type's own Flush).

// SplitVersion peels the leading version byte off an encoded record,
// returning it along with the remaining field bytes. Per §4.2 compat mode,
// callers loading legacy (unversioned) data should not call this at all —
// that decision is made once at startup, not per record.
func SplitVersion(b []byte) (version uint8, rest []byte, err error) {
	if len(b) < 1 {
		return 0, nil, ErrUnexpectedEOF
	}
	return b[0], b[1:], nil
}

// PrependVersion returns a new slice with v prepended to fields.
func PrependVersion(v uint8, fields []byte) []byte {
	out := make([]byte, 0, 1+len(fields))
	out = append(out, v)
	out = append(out, fields...)
	return out
}

// Migrator upgrades a type from one version to the very next one. A Loader
// (below) composes a chain of these to bring data encoded at any version
// W <= target forward to target, per I3 (migration is monotone).
type Migrator interface {
	// MigrateFrom decodes self from a previous-version encoding (prev is the
	// *previous* version's encoded field bytes, not including its version
	// byte) and returns this version's field bytes.
	MigrateFrom(prevVersion uint8, prevFields []byte) (fields []byte, err error)
}

// StepFunc is a single one-version-forward migration, keyed by the version
// it upgrades *from*.
type StepFunc func(prevFields []byte) (fields []byte, err error)

// Loader chains per-version migration steps so that data encoded at any
// version can be brought forward to CurrentVersion.
type Loader struct {
	CurrentVersion uint8
	// Steps[v] migrates from version v to v+1.
	Steps map[uint8]StepFunc
}

// Load decodes a raw record, applying whatever migration chain is needed to
// bring it up to l.CurrentVersion, and returns the current-version field
// bytes ready for the type's own decoder.
func (l Loader) Load(raw []byte) (fields []byte, migrated bool, err error) {
	version, fields, err := SplitVersion(raw)
	if err != nil {
		return nil, false, err
	}
	for version < l.CurrentVersion {
		step, ok := l.Steps[version]
		if !ok {
			return nil, false, ErrUnexpectedEOF
		}
		fields, err = step(fields)
		if err != nil {
			return nil, false, err
		}
		version++
		migrated = true
	}
	return fields, migrated, nil
}
