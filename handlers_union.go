package jsonproto

func init() {
	DefaultRegistry.RegisterOrigin(OriginUnion, newUnionHandler)
}

// unionHandler picks one arm of a Union canonical type to run a value
// through, iterating arms and collecting per-arm results, with three
// selection strategies:
//
//  1. discriminated: a Discriminator(field) constraint on the union names a
//     record field whose value selects the arm directly.
//  2. optional fast path: exactly two arms, one of which is null -- try the
//     non-null arm, fall back to null.
//  3. left-to-right: try each arm in order, first one with no issues wins.
type unionHandler struct {
	baseHandler
	ct            *CanonicalType
	reg           *Registry
	discriminator string
	isOptional    bool
	nonNullArm    *CanonicalType
}

func newUnionHandler(ct *CanonicalType, _ any, reg *Registry) Handler {
	h := &unionHandler{ct: ct, reg: reg}
	h.buildFn = func() error {
		if con, ok := ct.Annotations.Get("discriminator"); ok {
			h.discriminator = con.Args[0].(string)
		}
		if h.discriminator != "" {
			seen := map[any]bool{}
			for _, arm := range ct.Parameters {
				if arm.Origin != OriginRecord || arm.Record == nil {
					continue
				}
				fd, ok := h.discriminatorField(arm.Record)
				if !ok || !fd.HasDefault {
					continue
				}
				if seen[fd.Default] {
					return ErrDuplicateDiscriminator
				}
				seen[fd.Default] = true
			}
		}
		if len(ct.Parameters) == 2 {
			for _, arm := range ct.Parameters {
				if arm.Origin == OriginNull {
					h.isOptional = true
				} else {
					h.nonNullArm = arm
				}
			}
		}
		return nil
	}
	return h
}

func (h *unionHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	switch {
	case h.discriminator != "":
		return h.handleDiscriminated(value, ptr, cfg)
	case h.isOptional && h.nonNullArm != nil:
		return h.handleOptional(value, ptr, cfg)
	default:
		return h.handleLeftToRight(value, ptr, cfg)
	}
}

// discriminatorField finds the discriminator field of one record arm,
// matching the discriminator name against wire aliases first and Go field
// names second.
func (h *unionHandler) discriminatorField(rt *RecordType) (*FieldDescriptor, bool) {
	if fd, ok := rt.FieldByAlias[h.discriminator]; ok {
		return fd, true
	}
	fd, ok := rt.FieldByName[h.discriminator]
	return fd, ok
}

func (h *unionHandler) handleDiscriminated(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	m, ok := toMap(value)
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "mapping", value)}
		}
		return value, nil
	}
	tag, ok := m[h.discriminator]
	if !ok {
		return value, []*Issue{NewMissingDiscriminatorIssue(ptr, h.discriminator)}
	}

	for _, arm := range h.ct.Parameters {
		if arm.Origin != OriginRecord || arm.Record == nil {
			continue
		}
		if fd, ok := h.discriminatorField(arm.Record); ok && fd.HasDefault && fd.Default == tag {
			handler, err := h.reg.Handler(arm, nil, "")
			if err != nil {
				return value, []*Issue{{Kind: IssueJSONType, Pointer: ptr, Message: err.Error()}}
			}
			return handler.Handle(value, ptr, cfg)
		}
	}

	options := make([]any, 0, len(h.ct.Parameters))
	for _, arm := range h.ct.Parameters {
		if arm.Record != nil {
			if fd, ok := h.discriminatorField(arm.Record); ok && fd.HasDefault {
				options = append(options, fd.Default)
			}
		}
	}
	return value, []*Issue{NewInvalidDiscriminatorIssue(ptr, h.discriminator, tag, options)}
}

func (h *unionHandler) handleOptional(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	if value == nil {
		return nil, nil
	}
	handler, err := h.reg.Handler(h.nonNullArm, nil, "")
	if err != nil {
		return value, []*Issue{{Kind: IssueJSONType, Pointer: ptr, Message: err.Error()}}
	}
	return handler.Handle(value, ptr, cfg)
}

func (h *unionHandler) handleLeftToRight(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	var lastIssues []*Issue
	for _, arm := range h.ct.Parameters {
		handler, err := h.reg.Handler(arm, nil, "")
		if err != nil {
			continue
		}
		result, issues := handler.Handle(value, ptr, cfg)
		if len(issues) == 0 {
			return result, nil
		}
		lastIssues = issues
	}
	if cfg.Validate {
		return value, lastIssues
	}
	return value, nil
}
