package jsonproto

import (
	"math/big"
	"strconv"
)

func init() {
	DefaultRegistry.RegisterOrigin(OriginInt, newIntHandler)
	DefaultRegistry.RegisterOrigin(OriginFloat, newFloatHandler)
	DefaultRegistry.RegisterOrigin(OriginDecimal, newDecimalHandler)
}

type intHandler struct {
	baseHandler
	bounds numericBounds
}

func newIntHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &intHandler{}
	h.buildFn = func() error {
		h.bounds = consolidateBounds(ct.Annotations)
		return nil
	}
	return h
}

func (h *intHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	i, ok := asInt(value)
	if !ok && cfg.Coerce {
		i, ok = coerceInt(value)
	}
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "int", value)}
		}
		return value, nil
	}
	if cfg.Validate {
		if issue := h.bounds.check(ptr, new(big.Rat).SetInt64(i), value); issue != nil {
			return i, []*Issue{issue}
		}
	}
	return i, nil
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

func coerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

type floatHandler struct {
	baseHandler
	bounds numericBounds
}

func newFloatHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &floatHandler{}
	h.buildFn = func() error {
		h.bounds = consolidateBounds(ct.Annotations)
		return nil
	}
	return h
}

func (h *floatHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	f, ok := asFloat(value)
	if !ok && cfg.Coerce {
		f, ok = coerceFloat(value)
	}
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "float", value)}
		}
		return value, nil
	}
	if cfg.Validate {
		r, exact := toRat(f)
		if exact {
			if issue := h.bounds.check(ptr, r, value); issue != nil {
				return f, []*Issue{issue}
			}
		}
	}
	return f, nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// decimalHandler carries exact decimal values as *big.Rat, converting
// to/from their string representation at the JSON boundary: JSON numbers
// cannot round-trip arbitrary precision, so decimal always serializes as a
// string, whole numbers included ("2", not 2).
type decimalHandler struct {
	baseHandler
	bounds numericBounds
}

func newDecimalHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &decimalHandler{}
	h.buildFn = func() error {
		h.bounds = consolidateBounds(ct.Annotations)
		return nil
	}
	return h
}

func (h *decimalHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	var r *big.Rat
	var ok bool
	switch v := value.(type) {
	case *big.Rat:
		r, ok = v, true
	case string:
		r, ok = toRat(v)
	case float64:
		r, ok = toRat(v)
	}
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "decimal", value)}
		}
		return value, nil
	}
	if cfg.Validate {
		if issue := h.bounds.check(ptr, r, value); issue != nil {
			return value, []*Issue{issue}
		}
	}
	if cfg.Convert {
		if cfg.EncodingToJSON() {
			return ratString(r), nil
		}
		return r, nil
	}
	return value, nil
}
