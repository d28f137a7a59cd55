package jsonproto

import (
	"fmt"
	"strings"
)

// CanonicalType is the reduced (origin, parameters, annotations, is_partial)
// triple a TypeExpr resolves to. Non-partial canonical types built from the
// same signature are the same *CanonicalType instance (see Resolver), so
// registry and handler caches can key off pointer identity when they hold
// a live reference, and off Key() otherwise.
type CanonicalType struct {
	Origin      Origin
	Parameters  []*CanonicalType
	Annotations *Constraints
	IsPartial   bool

	Literals   []any
	Record     *RecordType
	EnumType   any
	EnumValues []any
	Name       string // surviving ForwardRef name when IsPartial

	key string
}

// Key returns a deterministic signature string identifying this canonical
// type's shape, used as a comparable map key wherever a *CanonicalType
// itself can't be (e.g. before interning, or across resolver instances).
func (c *CanonicalType) Key() string {
	if c == nil {
		return "<nil>"
	}
	if c.key != "" {
		return c.key
	}
	var b strings.Builder
	b.WriteString(string(c.Origin))
	if c.Name != "" {
		fmt.Fprintf(&b, "[%s]", c.Name)
	}
	if len(c.Parameters) > 0 {
		b.WriteByte('(')
		for i, p := range c.Parameters {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.Key())
		}
		b.WriteByte(')')
	}
	if len(c.Literals) > 0 {
		fmt.Fprintf(&b, "{%v}", c.Literals)
	}
	if c.Record != nil {
		fmt.Fprintf(&b, "<record:%s>", c.Record.Name())
	}
	if c.EnumType != nil || len(c.EnumValues) > 0 {
		fmt.Fprintf(&b, "<enum:%v>{%v}", c.EnumType, c.EnumValues)
	}
	if c.Annotations != nil {
		fmt.Fprintf(&b, "@%s", c.Annotations.Signature())
	}
	if c.IsPartial {
		b.WriteString("!partial")
	}
	c.key = b.String()
	return c.key
}

// Is reports whether c's origin matches any of the given origins.
func (c *CanonicalType) Is(origins ...Origin) bool {
	for _, o := range origins {
		if c.Origin == o {
			return true
		}
	}
	return false
}

// WithAnnotations returns a copy of c with its Annotations bag replaced by
// ann merged on top of c's own (ann wins on id collisions).
func (c *CanonicalType) WithAnnotations(ann []*Constraint) *CanonicalType {
	if len(ann) == 0 {
		return c
	}
	cp := *c
	overlay := NewConstraints(ann...)
	if c.Annotations == nil {
		cp.Annotations = overlay
	} else {
		cp.Annotations = overlay.ExtendLeft(c.Annotations)
	}
	cp.key = ""
	return &cp
}
