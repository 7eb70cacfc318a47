package query

import "github.com/statesmith/corestate/store"

// MethodHandler answers one read-only method with raw result bytes.
type MethodHandler func(args []byte) ([]byte, error)

// FieldResolver returns the Responder for a named field's inner value.
type FieldResolver func() (*Responder, error)

// Responder routes a Query against a store view: raw variants read
// directly through the view (the client's proof-building fallback),
// Field/Method variants route through registered handlers exactly as
// call.Dispatcher does for mutations.
type Responder struct {
	view    store.View
	fields  map[byte]FieldResolver
	methods map[byte]MethodHandler
}

// NewResponder creates a responder bound to view, used to answer raw-key
// queries directly; Field/Method handlers are registered by the caller.
func NewResponder(view store.View) *Responder {
	return &Responder{view: view, fields: make(map[byte]FieldResolver), methods: make(map[byte]MethodHandler)}
}

func (r *Responder) Field(i byte, resolver FieldResolver) *Responder {
	r.fields[i] = resolver
	return r
}

func (r *Responder) Method(i byte, handler MethodHandler) *Responder {
	r.methods[i] = handler
	return r
}

// Respond answers q, returning the raw result bytes (a method's return
// value, or a raw key's value/neighbour). It does not report which store
// keys it consulted; when the view is backed by a merkle.ProofBuilder, the
// builder records those keys itself (ProofBuilder.TouchedKeys).
func (r *Responder) Respond(q Query) ([]byte, error) {
	switch q.Kind {
	case KindRawKey:
		return r.view.Get(q.Key)
	case KindRawNext:
		kv, err := r.view.GetNext(q.Key)
		if err != nil {
			return nil, err
		}
		if kv == nil {
			return nil, nil
		}
		return kv.Value, nil
	case KindRawPrev:
		kv, err := r.view.GetPrev(q.Key)
		if err != nil {
			return nil, err
		}
		if kv == nil {
			return nil, nil
		}
		return kv.Value, nil
	case KindField:
		resolver, ok := r.fields[q.Index]
		if !ok {
			return nil, ErrUnknownKind
		}
		inner, err := resolver()
		if err != nil {
			return nil, err
		}
		return inner.Respond(*q.Inner)
	case KindMethod:
		handler, ok := r.methods[q.Index]
		if !ok {
			return nil, ErrUnknownKind
		}
		return handler(q.Args)
	default:
		return nil, ErrUnknownKind
	}
}
