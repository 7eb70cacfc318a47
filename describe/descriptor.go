package describe

import (
	"reflect"

	"github.com/statesmith/corestate/store"
)

// DecodeFunc loads a value of the descriptor's type from its view and
// encoded self-bytes.
type DecodeFunc func(view store.View, selfBytes []byte) (interface{}, error)

// Child names one fixed-prefix sub-object of a state type: a struct field
// declared at a known positional index.
type Child struct {
	Name       string
	FieldIndex byte
	Descriptor *Descriptor
}

// DynamicChild describes a tree-resident collection (e.g. a map field):
// arbitrarily many children keyed by store key rather than a fixed name,
// with shared key/value descriptors.
type DynamicChild struct {
	KeyDescriptor   *Descriptor
	ValueDescriptor *Descriptor
}

// Descriptor is the reflection node for one state type: enough information
// to decode a value, enumerate its named children, and recognise its
// dynamic (map-like) children.
type Descriptor struct {
	TypeID   reflect.Type
	Name     string
	Decode   DecodeFunc
	Children []Child
	Dynamic  *DynamicChild
}

// registry maps a Go type to its Descriptor, populated by Register at
// package init time for every state type that wants client-loop type-trace
// resolution.
var registry = map[reflect.Type]*Descriptor{}

// Register associates d with the Go type t, so that ResolveByType can later
// map a traced receiver type back to its Descriptor.
func Register(t reflect.Type, d *Descriptor) {
	registry[t] = d
}

// ResolveByType looks up the Descriptor registered for t, if any.
func ResolveByType(t reflect.Type) (*Descriptor, bool) {
	d, ok := registry[t]
	return d, ok
}

// ChildByName finds a named child descriptor.
func (d *Descriptor) ChildByName(name string) (Child, bool) {
	for _, c := range d.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Child{}, false
}

// Prefix returns the sub-prefix for the Nth declared child, per I4 (field N
// occupies prefix byte N).
func Prefix(fieldIndex byte) []byte {
	return []byte{fieldIndex}
}
