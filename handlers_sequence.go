package jsonproto

import "reflect"

func init() {
	DefaultRegistry.RegisterOrigin(OriginSequence, newSequenceHandler)
	DefaultRegistry.RegisterOrigin(OriginTuple, newTupleHandler)
}

type sequenceHandler struct {
	baseHandler
	ct       *CanonicalType
	elem     *CanonicalType
	lenBound numericBounds
	reg      *Registry
}

func newSequenceHandler(ct *CanonicalType, _ any, reg *Registry) Handler {
	return &sequenceHandler{ct: ct, elem: ct.Parameters[0], lenBound: consolidateLength(ct.Annotations), reg: reg}
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func (h *sequenceHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	items, ok := toSlice(value)
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "sequence", value)}
		}
		return value, nil
	}

	var issues []*Issue
	if cfg.Validate {
		if issue := h.lenBound.check(ptr, ratFromInt(len(items)), items); issue != nil {
			issues = append(issues, issue)
		}
	}

	elemHandler, err := h.reg.Handler(h.elem, nil, "")
	if err != nil {
		return value, append(issues, &Issue{Kind: IssueJSONType, Pointer: ptr, Message: err.Error()})
	}

	out := make([]any, 0, len(items))
	for i, item := range items {
		childPtr := ptr.Index(i)
		if !cfg.Included(childPtr) {
			continue
		}
		result, childIssues := elemHandler.Handle(item, childPtr, cfg)
		issues = append(issues, childIssues...)
		if !IsEmpty(result) {
			out = append(out, result)
		}
	}
	return out, issues
}

type tupleHandler struct {
	baseHandler
	ct   *CanonicalType
	elems []*CanonicalType
	reg  *Registry
}

func newTupleHandler(ct *CanonicalType, _ any, reg *Registry) Handler {
	return &tupleHandler{ct: ct, elems: ct.Parameters, reg: reg}
}

func (h *tupleHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	items, ok := toSlice(value)
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "tuple", value)}
		}
		return value, nil
	}
	if cfg.Validate && len(items) != len(h.elems) {
		return value, []*Issue{NewLengthIssue(ptr, "==", len(h.elems), len(items))}
	}

	var issues []*Issue
	out := make([]any, 0, len(items))
	for i, item := range items {
		if i >= len(h.elems) {
			break
		}
		childPtr := ptr.Index(i)
		handler, err := h.reg.Handler(h.elems[i], nil, "")
		if err != nil {
			issues = append(issues, &Issue{Kind: IssueJSONType, Pointer: childPtr, Message: err.Error()})
			continue
		}
		if !cfg.Included(childPtr) {
			continue
		}
		result, childIssues := handler.Handle(item, childPtr, cfg)
		issues = append(issues, childIssues...)
		out = append(out, result)
	}
	return out, issues
}
