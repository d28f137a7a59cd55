package jsonproto

import "reflect"

func init() {
	DefaultRegistry.RegisterOrigin(OriginRecord, newRecordHandler)
}

type recordHandler struct {
	baseHandler
	rt  *RecordType
	reg *Registry
}

func newRecordHandler(ct *CanonicalType, _ any, reg *Registry) Handler {
	return &recordHandler{rt: ct.Record, reg: reg}
}

func (h *recordHandler) Build() error {
	if err := h.baseHandler.Build(); err != nil {
		return err
	}
	h.rt.ensure()
	return h.rt.buildErr
}

func (h *recordHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if cfg.EncodingToJSON() {
		return h.encode(value, ptr, cfg)
	}
	return h.decode(value, ptr, cfg)
}

// structFieldMap reads value as a live Go struct of rt's declared type
// (struct or struct-pointer source shapes) into a field-name-keyed map, so
// decode can treat a struct instance and a JSON-shaped mapping through the
// same per-key loop.
func structFieldMap(rt *RecordType, value any) (map[string]any, bool) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type() != rt.GoType {
		return nil, false
	}
	out := make(map[string]any, len(rt.Fields))
	for _, fd := range rt.Fields {
		out[fd.Name] = rv.FieldByIndex(fd.GoIndex).Interface()
	}
	return out, true
}

// decode consumes a mapping (JSON-shaped, native-unstruct, or a live Go
// struct instance) and produces either a populated Go struct (target ==
// struct) or a field-name-keyed map of native values (any other target
// shape). Each incoming key is resolved against both the field's wire alias
// and its Go name, since a struct-shaped source keys by name while a
// JSON/unstruct source keys by alias (spec's "by name or alias" lookup).
func (h *recordHandler) decode(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	m, ok := toMap(value)
	if !ok {
		m, ok = structFieldMap(h.rt, value)
	}
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "mapping", value)}
		}
		return value, nil
	}

	var issues []*Issue
	setted := map[string]bool{}
	decoded := map[string]any{}
	extras := map[string]any{}

	for k, raw := range m {
		fd := h.rt.FieldByAlias[k]
		if fd == nil {
			fd = h.rt.FieldByName[k]
		}
		if fd == nil || fd.Computed {
			extras[k] = raw
			continue
		}
		childPtr := ptr.Field(fd.Alias)
		if !cfg.Included(childPtr) {
			continue
		}
		handler, err := h.reg.Handler(fd.Canonical, nil, "")
		if err != nil {
			issues = append(issues, &Issue{Kind: IssueJSONType, Pointer: childPtr, Message: err.Error()})
			continue
		}
		result, childIssues := handler.Handle(raw, childPtr, cfg)
		issues = append(issues, childIssues...)
		if IsEmpty(result) {
			continue
		}
		decoded[fd.Name] = result
		setted[fd.Name] = true
	}

	if cfg.Validate {
		for _, fd := range h.rt.Fields {
			if fd.Computed || setted[fd.Name] || fd.HasDefault {
				continue
			}
			if fd.Constraints.Has("required") {
				issues = append(issues, NewMissingFieldIssue(ptr.Field(fd.Alias), fd.Alias))
			}
		}
		issues = append(issues, h.checkDependentDisjoint(ptr, setted)...)
	}

	switch h.rt.ExtrasMode {
	case ExtrasForbid:
		if cfg.Validate {
			for k := range extras {
				issues = append(issues, NewExtraFieldIssue(ptr.Field(k), k))
			}
		}
	case ExtrasRoundtrip:
		for k, v := range extras {
			decoded[k] = v
		}
	}

	for _, fd := range h.rt.Fields {
		if !setted[fd.Name] && fd.HasDefault {
			decoded[fd.Name] = fd.Default
		}
	}

	if cfg.Target != ShapeStruct {
		return decoded, issues
	}

	out := reflect.New(h.rt.GoType).Elem()
	for _, fd := range h.rt.Fields {
		v, ok := decoded[fd.Name]
		if !ok {
			continue
		}
		field := out.FieldByIndex(fd.GoIndex)
		assignReflect(field, v)
	}
	return out.Interface(), issues
}

// encode reads a Go struct (or a field-keyed map) and produces a map keyed
// by each field's wire alias, applying the exclude-none/default toggles and
// extras roundtrip. Fields missing from a map source are always skipped,
// and every field of a struct source counts as set, so ExcludeUnset drops
// nothing further here.
func (h *recordHandler) encode(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	var get func(name string) (any, bool)
	var extras map[string]any

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.IsValid() && rv.Kind() == reflect.Struct && rv.Type() == h.rt.GoType {
		get = func(name string) (any, bool) {
			fd := h.rt.FieldByName[name]
			return rv.FieldByIndex(fd.GoIndex).Interface(), true
		}
	} else if m, ok := toMap(value); ok {
		get = func(name string) (any, bool) {
			v, ok := m[name]
			return v, ok
		}
		extras = m
	} else {
		if cfg.Validate {
			return value, []*Issue{NewStructTypeIssue(ptr, h.rt.Name(), value)}
		}
		return value, nil
	}

	var issues []*Issue
	out := map[string]any{}
	for _, fd := range h.rt.Fields {
		raw, present := get(fd.Name)
		if extras != nil {
			delete(extras, fd.Name)
		}
		if !present {
			continue
		}
		if cfg.ExcludeUnset && !present {
			continue
		}
		if cfg.ExcludeDefault && fd.HasDefault && reflect.DeepEqual(raw, fd.Default) {
			continue
		}
		if cfg.ExcludeNone && raw == nil {
			continue
		}
		childPtr := ptr.Field(fd.Alias)
		if !cfg.Included(childPtr) {
			continue
		}
		handler, err := h.reg.Handler(fd.Canonical, nil, "")
		if err != nil {
			issues = append(issues, &Issue{Kind: IssueJSONType, Pointer: childPtr, Message: err.Error()})
			continue
		}
		result, childIssues := handler.Handle(raw, childPtr, cfg)
		issues = append(issues, childIssues...)
		if IsEmpty(result) {
			continue
		}
		out[fd.Alias] = result
	}
	if h.rt.ExtrasMode == ExtrasRoundtrip {
		for k, v := range extras {
			out[k] = v
		}
	}
	return out, issues
}

func (h *recordHandler) checkDependentDisjoint(ptr *Pointer, setted map[string]bool) []*Issue {
	var issues []*Issue
	for _, group := range h.rt.DependentGroups {
		var given []string
		for _, name := range group {
			if setted[name] {
				given = append(given, name)
			}
		}
		if len(given) > 0 && len(given) < len(group) {
			issues = append(issues, NewDependentIssue(ptr, group, given))
		}
	}
	for _, group := range h.rt.DisjointGroups {
		var given []string
		for _, name := range group {
			if setted[name] {
				given = append(given, name)
			}
		}
		if len(given) > 1 {
			issues = append(issues, NewDisjointIssue(ptr, group, given))
		}
	}
	return issues
}

func assignReflect(field reflect.Value, v any) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if field.Kind() == reflect.Ptr && rv.Kind() != reflect.Ptr {
		ptr := reflect.New(field.Type().Elem())
		if rv.Type().ConvertibleTo(field.Type().Elem()) {
			ptr.Elem().Set(rv.Convert(field.Type().Elem()))
			field.Set(ptr)
		}
		return
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
	}
}
