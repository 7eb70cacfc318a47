package call

// MethodHandler invokes one terminal method given its raw argument bytes.
type MethodHandler func(args []byte) error

// FieldResolver returns the Dispatcher for a named field's inner value, so
// a Field call can recurse into it.
type FieldResolver func() (*Dispatcher, error)

// Dispatcher routes a Call to the field resolver or method handler
// registered for its index. One Dispatcher exists per state object
// instance, built fresh for each call since field resolvers close over
// that instance's live fields.
type Dispatcher struct {
	fields  map[byte]FieldResolver
	methods map[byte]MethodHandler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{fields: make(map[byte]FieldResolver), methods: make(map[byte]MethodHandler)}
}

// Field registers the resolver for field index i.
func (d *Dispatcher) Field(i byte, resolver FieldResolver) *Dispatcher {
	d.fields[i] = resolver
	return d
}

// Method registers the handler for method index i.
func (d *Dispatcher) Method(i byte, handler MethodHandler) *Dispatcher {
	d.methods[i] = handler
	return d
}

// Dispatch routes c to its registered handler, recursing through Field
// calls until it reaches and invokes a Method call.
func (d *Dispatcher) Dispatch(c Call) error {
	switch c.Kind {
	case KindField:
		resolver, ok := d.fields[c.Index]
		if !ok {
			return ErrUnknownKind
		}
		inner, err := resolver()
		if err != nil {
			return err
		}
		return inner.Dispatch(*c.Inner)
	case KindMethod:
		handler, ok := d.methods[c.Index]
		if !ok {
			return ErrUnknownKind
		}
		return handler(c.Args)
	default:
		return ErrUnknownKind
	}
}
