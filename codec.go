package jsonproto

import (
	"bytes"
	"io"
	"reflect"
)

// Execute runs a single validate/coerce/convert pass described by cfg,
// moving source from cfg.Source's shape to cfg.Target's shape according to
// the type described by hint. It is the engine's one external entry point;
// everything else (resolver, registry, handlers, record runtime) exists to
// make this call correct and fast.
//
// hint may be left as the zero TypeExpr, and cfg.Source/cfg.Target may be
// left as the zero Shape ("") when source is a record instance -- these are
// inferred the same way the original codec's execute() does: a hint from a
// record instance's own Go type, a source shape from whether the caller
// handed over a record, a JSON string/bytes, or a readable stream, and a
// missing target shape from the (possibly just-inferred) source shape.
func Execute(hint TypeExpr, source any, cfg *Config) (any, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if !cfg.Validate && !cfg.Coerce && !cfg.Convert {
		return nil, ErrNoOperationRequested
	}

	cfg, hint, err := inferMissing(cfg, hint, source)
	if err != nil {
		return nil, err
	}

	if !cfg.Validate && !cfg.Coerce {
		if out, handled, err := fastPathTranscode(source, cfg); handled {
			return out, err
		}
	}

	if cfg.Serializer == nil {
		cfg = cfg.clone()
		cfg.Serializer = JSONSerializer{}
	}
	value, err := decodeSourceShape(source, cfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Patches) > 0 {
		patchSet := NewPatchSet(cfg.Patches...)
		var applied bool
		value, _, applied = patchSet.Apply(Root, value, true)
		_ = applied
	}

	ct := DefaultResolver.Resolve(hint, nil, true)
	handler, err := DefaultRegistry.Handler(ct, nil, "")
	if err != nil {
		return nil, err
	}

	result, issues := handler.Handle(value, Root, cfg)
	var verr *ValidationError
	if cfg.Validate && len(issues) > 0 {
		verr = &ValidationError{Issues: issues}
	}

	encoded, err := encodeTargetShape(result, cfg)
	if err != nil {
		if verr != nil {
			return encoded, verr
		}
		return encoded, err
	}
	if verr != nil {
		return encoded, verr
	}
	return encoded, nil
}

// ExecuteStruct is a convenience wrapper for the common case of
// decoding/encoding against a declared Go record type rather than a raw
// TypeExpr.
func ExecuteStruct(goType reflect.Type, source any, cfg *Config) (any, error) {
	rt := DeclareRecord(goType)
	return Execute(RecordOf(rt), source, cfg)
}

// isRecordInstance reports whether v is a (possibly pointer-to) struct
// value, the Go equivalent of the original codec's is_struct_instance
// check used to drive type_hint/source inference.
func isRecordInstance(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}

func recordInstanceType(v any) reflect.Type {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv.Type()
}

// inferMissing fills in a missing type_hint and/or missing source/target
// shapes, mirroring the original codec's execute(): a hint is only ever
// inferred from a record instance (guessing a hint from an arbitrary bare
// map or scalar is ambiguous and error-prone, so that case is still an
// error); source is inferred from whichever of record-instance, string,
// byte slice, or io.Reader source actually is; target, if still missing,
// defaults to the (possibly just-inferred) source, making a same-shape
// round trip the default instead of a forced shape change. cfg is cloned
// before any of this mutates it, since callers may share one Config across
// concurrent Execute calls.
func inferMissing(cfg *Config, hint TypeExpr, source any) (*Config, TypeExpr, error) {
	needsHint := hint.Origin == ""
	if !needsHint && cfg.Source != "" && cfg.Target != "" {
		return cfg, hint, nil
	}
	cfg = cfg.clone()

	if needsHint {
		if !isRecordInstance(source) {
			return cfg, hint, ErrTypeHintRequired
		}
		hint = RecordOf(DeclareRecord(recordInstanceType(source)))
		if cfg.Source == "" {
			cfg.Source = ShapeStruct
		}
	}

	if cfg.Source == "" {
		switch {
		case isRecordInstance(source):
			cfg.Source = ShapeStruct
		case hint.Origin == OriginRecord:
			switch source.(type) {
			case string:
				cfg.Source = ShapeJSONStr
			case []byte:
				cfg.Source = ShapeJSONBytes
			default:
				if _, ok := source.(io.Reader); ok {
					cfg.Source = ShapeBinStream
				} else {
					return cfg, hint, ErrSourceShapeRequired
				}
			}
		default:
			return cfg, hint, ErrSourceShapeRequired
		}
	}

	if cfg.Target == "" {
		cfg.Target = cfg.Source
	}
	return cfg, hint, nil
}

// fastPathTranscode implements spec's wire-format fast paths: when neither
// validation nor coercion is requested, moving between two JSON-text-ish
// shapes or between two stream shapes never needs to touch native values,
// so it bypasses decode/resolve/handle/encode entirely. handled is false
// for every shape pairing that still needs the full pipeline (e.g. a
// struct/unstruct source, or any shape change that needs real decoding).
func fastPathTranscode(source any, cfg *Config) (any, bool, error) {
	switch cfg.Source {
	case ShapeJSONBytes:
		b, ok := source.([]byte)
		if !ok {
			return nil, false, nil
		}
		switch cfg.Target {
		case ShapeJSONBytes:
			return b, true, nil
		case ShapeJSONStr:
			return string(b), true, nil
		}
	case ShapeJSONStr:
		s, ok := source.(string)
		if !ok {
			return nil, false, nil
		}
		switch cfg.Target {
		case ShapeJSONStr:
			return s, true, nil
		case ShapeJSONBytes:
			return []byte(s), true, nil
		}
	case ShapeBinStream, ShapeTextStream:
		r, ok := source.(io.Reader)
		if !ok {
			return nil, false, nil
		}
		switch cfg.Target {
		case ShapeBinStream, ShapeTextStream:
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, r); err != nil {
				return nil, true, err
			}
			return &buf, true, nil
		}
	}
	return nil, false, nil
}

func decodeSourceShape(source any, cfg *Config) (any, error) {
	if cfg.Serializer == nil {
		cfg.Serializer = JSONSerializer{}
	}
	switch cfg.Source {
	case ShapeJSONStr:
		s, ok := source.(string)
		if !ok {
			return nil, ErrUnsupportedShape
		}
		return cfg.Serializer.FromStr(s)
	case ShapeJSONBytes:
		b, ok := source.([]byte)
		if !ok {
			return nil, ErrUnsupportedShape
		}
		return cfg.Serializer.FromBytes(b)
	case ShapeBinStream:
		r, ok := source.(io.Reader)
		if !ok {
			return nil, ErrUnsupportedShape
		}
		return cfg.Serializer.FromBinaryStream(r)
	case ShapeTextStream:
		r, ok := source.(io.Reader)
		if !ok {
			return nil, ErrUnsupportedShape
		}
		return cfg.Serializer.FromTextStream(r)
	default:
		return source, nil
	}
}

func encodeTargetShape(value any, cfg *Config) (any, error) {
	switch cfg.Target {
	case ShapeJSONStr:
		return cfg.Serializer.ToStr(value)
	case ShapeJSONBytes:
		return cfg.Serializer.ToBytes(value)
	case ShapeBinStream:
		var buf bytes.Buffer
		if err := cfg.Serializer.ToBinaryStream(&buf, value); err != nil {
			return nil, err
		}
		return &buf, nil
	case ShapeTextStream:
		var buf bytes.Buffer
		if err := cfg.Serializer.ToTextStream(&buf, value); err != nil {
			return nil, err
		}
		return &buf, nil
	default:
		return value, nil
	}
}
