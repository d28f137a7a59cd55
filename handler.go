package jsonproto

// emptyType is the sentinel a Handler returns in place of a value when it
// has nothing meaningful to produce (an excluded field, a dropped extra).
// It is distinct from Go's nil and from any internal "field absent" marker
// used inside record field descriptors.
type emptyType struct{}

// Empty is the handler-returned-nothing sentinel.
var Empty any = emptyType{}

// IsEmpty reports whether v is the Empty sentinel.
func IsEmpty(v any) bool {
	_, ok := v.(emptyType)
	return ok
}

// Handler performs validate/coerce/convert for one canonical type family.
// Build is called at most once per handler instance, lazily, before the
// first Handle call; implementations that need to precompile anything
//(regexes, bound consolidation, discriminator maps) do it there so Handle
// stays allocation-light on the hot path.
type Handler interface {
	Build() error
	Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue)
}

// HandlerFactory constructs a Handler bound to a specific canonical type,
// its constraints, and an optional pinned value (used by ClassVar/Final
// handlers, which compare every call against one frozen value).
type HandlerFactory func(ct *CanonicalType, pinned any, reg *Registry) Handler

// baseHandler centralizes the lazy, idempotent Build lifecycle so concrete
// handlers only set buildFn (when they need a build step) and implement
// Handle.
type baseHandler struct {
	built   bool
	buildFn func() error
}

func (b *baseHandler) Build() error {
	if b.built {
		return nil
	}
	b.built = true
	if b.buildFn == nil {
		return nil
	}
	return b.buildFn()
}
