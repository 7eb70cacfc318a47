package plugins

import (
	queryvariant "github.com/statesmith/corestate/query"
)

// QueryPlugin wraps the innermost application state with read-through
// access that also supports the raw-key lookups the client's proof-building
// side issues (§4.3 item 7). It is the innermost plugin layer; Call simply
// forwards to the application's own call dispatcher.
type QueryPlugin struct {
	responder *queryvariant.Responder
	inner     App
}

// NewQueryPlugin wraps inner, answering queries via responder.
func NewQueryPlugin(responder *queryvariant.Responder, inner App) *QueryPlugin {
	return &QueryPlugin{responder: responder, inner: inner}
}

// Call forwards to the application.
func (p *QueryPlugin) Call(raw []byte) error {
	return p.inner.Call(raw)
}

// Query answers q via the bound Responder, which knows how to route Field
// and Method variants to the application as well as serve raw-key reads
// directly off the store view.
func (p *QueryPlugin) Query(q queryvariant.Query) ([]byte, error) {
	return p.responder.Respond(q)
}

// Inner returns the wrapped layer.
func (p *QueryPlugin) Inner() App { return p.inner }

var _ InnerApp = (*QueryPlugin)(nil)
