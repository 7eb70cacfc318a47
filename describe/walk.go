package describe

import (
	"fmt"

	"github.com/statesmith/corestate/store"
)

// Node is a generic, descriptor-driven rendering of one decoded value,
// suitable for JSON-marshaling or pretty-printing without a type-specific
// formatter.
type Node struct {
	Name     string                 `json:"name"`
	Value    interface{}            `json:"value,omitempty"`
	Children map[string]*Node       `json:"children,omitempty"`
}

// Walk decodes the value at view using d, then recurses into every named
// child, producing a tree that mirrors the state object's field layout.
func Walk(d *Descriptor, view store.View, selfBytes []byte) (*Node, error) {
	value, err := d.Decode(view, selfBytes)
	if err != nil {
		return nil, fmt.Errorf("describe: decode %s: %w", d.Name, err)
	}

	node := &Node{Name: d.Name, Value: value}
	if len(d.Children) == 0 {
		return node, nil
	}

	node.Children = make(map[string]*Node, len(d.Children))
	for _, child := range d.Children {
		childView := view.Sub(Prefix(child.FieldIndex))
		childBytes, err := childView.Get(nil)
		if err != nil {
			return nil, fmt.Errorf("describe: read child %s: %w", child.Name, err)
		}
		childNode, err := Walk(child.Descriptor, childView, childBytes)
		if err != nil {
			return nil, err
		}
		node.Children[child.Name] = childNode
	}
	return node, nil
}
