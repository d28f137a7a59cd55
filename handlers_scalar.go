package jsonproto

func init() {
	DefaultRegistry.RegisterOrigin(OriginBool, newBoolHandler)
	DefaultRegistry.RegisterOrigin(OriginNull, newNullHandler)
	DefaultRegistry.RegisterOrigin(OriginAny, newAnyHandler)
}

type boolHandler struct {
	baseHandler
	ct *CanonicalType
}

func newBoolHandler(ct *CanonicalType, _ any, _ *Registry) Handler { return &boolHandler{ct: ct} }

func (h *boolHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	if cfg.Coerce {
		switch v := value.(type) {
		case string:
			switch v {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
		case float64:
			return v != 0, nil
		case int:
			return v != 0, nil
		}
	}
	if cfg.Validate {
		return value, []*Issue{NewJSONTypeIssue(ptr, "bool", value)}
	}
	return value, nil
}

type nullHandler struct{ baseHandler }

func newNullHandler(*CanonicalType, any, *Registry) Handler { return &nullHandler{} }

func (h *nullHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if value == nil {
		return nil, nil
	}
	if cfg.Validate {
		return value, []*Issue{NewJSONTypeIssue(ptr, "null", value)}
	}
	return value, nil
}

type anyHandler struct{ baseHandler }

func newAnyHandler(*CanonicalType, any, *Registry) Handler { return &anyHandler{} }

func (h *anyHandler) Handle(value any, _ *Pointer, _ *Config) (any, []*Issue) {
	return value, nil
}
