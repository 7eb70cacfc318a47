package plugins

import "github.com/statesmith/corestate/query"

// App is the contract every plugin layer and the user application itself
// implement: accept raw call bytes (this layer's own wire shape) and
// mutate state, or answer a read-only Query. Layers decode their own
// envelope out of the raw bytes and pass the remainder down to Inner.
type App interface {
	Call(raw []byte) error
	Query(q query.Query) ([]byte, error)
}

// InnerApp is implemented by every plugin so the stack can be built
// generically; it exposes the wrapped layer for composition in stack.go.
type InnerApp interface {
	App
	Inner() App
}
