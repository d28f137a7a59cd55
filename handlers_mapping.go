package jsonproto

import (
	"fmt"
	"reflect"
)

func init() {
	DefaultRegistry.RegisterOrigin(OriginMapping, newMappingHandler)
}

type mappingHandler struct {
	baseHandler
	ct       *CanonicalType
	key      *CanonicalType
	value    *CanonicalType
	lenBound numericBounds
	reg      *Registry
}

func newMappingHandler(ct *CanonicalType, _ any, reg *Registry) Handler {
	return &mappingHandler{ct: ct, key: ct.Parameters[0], value: ct.Parameters[1], lenBound: consolidateLength(ct.Annotations), reg: reg}
}

func toMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
	}
	return out, true
}

func (h *mappingHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	m, ok := toMap(value)
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "mapping", value)}
		}
		return value, nil
	}

	var issues []*Issue
	if cfg.Validate {
		if issue := h.lenBound.check(ptr, ratFromInt(len(m)), m); issue != nil {
			issues = append(issues, issue)
		}
	}

	keyHandler, err := h.reg.Handler(h.key, nil, "")
	if err != nil {
		return value, append(issues, &Issue{Kind: IssueJSONType, Pointer: ptr, Message: err.Error()})
	}
	valueHandler, err := h.reg.Handler(h.value, nil, "")
	if err != nil {
		return value, append(issues, &Issue{Kind: IssueJSONType, Pointer: ptr, Message: err.Error()})
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		childPtr := ptr.Field(k)
		if !cfg.Included(childPtr) {
			continue
		}
		keyResult, keyIssues := keyHandler.Handle(k, childPtr, cfg)
		issues = append(issues, keyIssues...)
		valResult, valIssues := valueHandler.Handle(v, childPtr, cfg)
		issues = append(issues, valIssues...)
		if IsEmpty(valResult) {
			continue
		}
		keyStr, _ := keyResult.(string)
		if keyStr == "" {
			keyStr = fmt.Sprint(keyResult)
		}
		out[keyStr] = valResult
	}
	return out, issues
}
