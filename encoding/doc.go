// Package encoding implements the deterministic binary wire format shared by
// every state object in corestate: big-endian integers, length-prefixed
// variable-size fields, and a single leading version byte on every
// top-level (non-primitive) record.
//
// A versioned record looks like:
//
//	<version:u8> <field_0 bytes> <field_1 bytes> ...
//
// Primitive fields (integers, fixed arrays, raw byte strings) carry no
// version byte of their own; only state objects that declare migrations do.
package encoding
