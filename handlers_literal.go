package jsonproto

import "reflect"

func init() {
	DefaultRegistry.RegisterOrigin(OriginLiteral, newLiteralHandler)
}

// literalHandler accepts exactly one of a fixed, closed set of values
// (spec's Literal[...] family), distinct from enumHandler in that the
// members come from the type expression itself rather than a named Go enum
// type.
type literalHandler struct {
	baseHandler
	ct *CanonicalType
}

func newLiteralHandler(ct *CanonicalType, _ any, _ *Registry) Handler { return &literalHandler{ct: ct} }

func (h *literalHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	for _, opt := range h.ct.Literals {
		if reflect.DeepEqual(value, opt) {
			return value, nil
		}
	}
	if cfg.Validate {
		return value, []*Issue{NewEnumOptionIssue(ptr, value, h.ct.Literals)}
	}
	return value, nil
}
