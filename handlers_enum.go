package jsonproto

import "reflect"

func init() {
	DefaultRegistry.RegisterOrigin(OriginEnum, newEnumHandler)
}

type enumHandler struct {
	baseHandler
	ct      *CanonicalType
	members map[any]bool
}

func newEnumHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &enumHandler{ct: ct}
	h.buildFn = func() error {
		h.members = make(map[any]bool, len(ct.EnumValues))
		for _, v := range ct.EnumValues {
			h.members[v] = true
		}
		return nil
	}
	return h
}

func (h *enumHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if h.members[value] {
		return value, nil
	}
	if cfg.Validate {
		return value, []*Issue{NewEnumOptionIssue(ptr, value, h.ct.EnumValues)}
	}
	return value, nil
}

// classVarHandler and finalHandler both compare every call against one
// frozen value, the pinned argument passed to Registry.Handler (and on to
// the handler factory), rather than deriving acceptable values
// from the canonical type's shape.
func init() {
	DefaultRegistry.RegisterOrigin(OriginClassVar, newPinnedHandler)
	DefaultRegistry.RegisterOrigin(OriginFinal, newPinnedHandler)
}

type pinnedHandler struct {
	baseHandler
	pinned any
}

func newPinnedHandler(_ *CanonicalType, pinned any, _ *Registry) Handler {
	return &pinnedHandler{pinned: pinned}
}

func (h *pinnedHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if IsEmpty(value) {
		return h.pinned, nil
	}
	if cfg.Validate && !reflect.DeepEqual(value, h.pinned) {
		return value, []*Issue{NewConstantIssue(ptr, h.pinned, value)}
	}
	return h.pinned, nil
}
