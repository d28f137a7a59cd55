package jsonproto

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver reduces TypeExpr trees to CanonicalType triples, following
// forward references through a RecordType's Defs scope and detecting
// reference cycles. Non-partial resolutions are memoized globally; cyclic
// or forward-ref-incomplete resolutions are marked IsPartial and never
// cached, since they depend on scope state that may change.
type Resolver struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *CanonicalType]
}

// NewResolver creates a resolver with its own memoization cache.
func NewResolver() *Resolver {
	c, _ := lru.New[string, *CanonicalType](1 << 20)
	return &Resolver{cache: c}
}

// DefaultResolver is the package-level resolver used when callers don't
// need an isolated cache (the common case: registries and record types
// share it since canonical types are immutable once built).
var DefaultResolver = NewResolver()

// Resolve reduces expr to a CanonicalType. owner supplies the forward-ref
// scope (a record type's sibling declarations); resolveRefs controls
// whether forward references are followed at all (false leaves every
// ForwardRef partial, useful for a first structural pass).
func (r *Resolver) Resolve(expr TypeExpr, owner *RecordType, resolveRefs bool) *CanonicalType {
	sig := exprSignature(expr)
	r.mu.Lock()
	if cached, ok := r.cache.Get(sig); ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	ct := r.resolve(expr, owner, resolveRefs, map[string]bool{})
	if !ct.IsPartial {
		r.mu.Lock()
		r.cache.Add(sig, ct)
		r.mu.Unlock()
	}
	return ct
}

func (r *Resolver) resolve(expr TypeExpr, owner *RecordType, resolveRefs bool, visiting map[string]bool) *CanonicalType {
	switch expr.Origin {
	case OriginAnnotated:
		inner := r.resolve(expr.Params[0], owner, resolveRefs, visiting)
		return inner.WithAnnotations(expr.Annotations)

	case OriginForwardRef:
		if visiting[expr.Name] {
			return &CanonicalType{Origin: OriginForwardRef, IsPartial: true, Name: expr.Name}
		}
		if !resolveRefs || owner == nil {
			return &CanonicalType{Origin: OriginForwardRef, IsPartial: true, Name: expr.Name}
		}
		target, ok := owner.Defs[expr.Name]
		if !ok {
			return &CanonicalType{Origin: OriginForwardRef, IsPartial: true, Name: expr.Name}
		}
		visiting[expr.Name] = true
		resolved := r.resolve(target, owner, resolveRefs, visiting)
		delete(visiting, expr.Name)
		return resolved

	case OriginLiteral:
		return &CanonicalType{Origin: OriginLiteral, Literals: expr.Literals}

	case OriginEnum:
		return &CanonicalType{Origin: OriginEnum, EnumType: expr.EnumType, EnumValues: expr.EnumValues}

	case OriginRecord:
		return &CanonicalType{Origin: OriginRecord, Record: expr.Record}

	case OriginUnion:
		arms := make([]*CanonicalType, len(expr.Params))
		partial := false
		for i, a := range expr.Params {
			arms[i] = r.resolve(a, owner, resolveRefs, visiting)
			partial = partial || arms[i].IsPartial
		}
		return &CanonicalType{Origin: OriginUnion, Parameters: arms, IsPartial: partial, Annotations: toConstraints(expr.Annotations)}

	default:
		params := make([]*CanonicalType, len(expr.Params))
		partial := false
		for i, p := range expr.Params {
			params[i] = r.resolve(p, owner, resolveRefs, visiting)
			partial = partial || params[i].IsPartial
		}
		return &CanonicalType{
			Origin:      expr.Origin,
			Parameters:  params,
			Annotations: toConstraints(expr.Annotations),
			IsPartial:   partial,
		}
	}
}

func toConstraints(cs []*Constraint) *Constraints {
	if len(cs) == 0 {
		return nil
	}
	return NewConstraints(cs...)
}

// exprSignature produces a structural key for memoization purposes. Unlike
// CanonicalType.Key, it operates on the pre-resolution TypeExpr, so it
// cannot distinguish resolved-vs-partial forward refs; that's fine, since
// only non-partial results are ever stored under it.
func exprSignature(e TypeExpr) string {
	s := string(e.Origin)
	if e.Name != "" {
		s += "[" + e.Name + "]"
	}
	for _, p := range e.Params {
		s += "(" + exprSignature(p) + ")"
	}
	for _, l := range e.Literals {
		s += signatureOf(l)
	}
	if e.Record != nil {
		s += "<" + e.Record.Name() + ">"
	}
	if e.EnumType != nil {
		s += "<" + e.EnumType.String() + ">"
	}
	for _, v := range e.EnumValues {
		s += signatureOf(v)
	}
	for _, a := range e.Annotations {
		s += "@" + string(a.Kind) + ":" + string(a.ID) + signatureOf(a.Args)
	}
	return s
}

func signatureOf(v any) string {
	return fmt.Sprintf("{%v}", v)
}
