package jsonproto

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ConstraintKind groups constraints by the concern they express.
type ConstraintKind string

const (
	KindValue          ConstraintKind = "value"
	KindLength         ConstraintKind = "length"
	KindPattern        ConstraintKind = "pattern"
	KindEncoding       ConstraintKind = "encoding"
	KindFormat         ConstraintKind = "format"
	KindDiscriminator  ConstraintKind = "discriminator"
	KindAlias          ConstraintKind = "alias"
	KindDefault        ConstraintKind = "default"
	KindDefaultFactory ConstraintKind = "default_factory"
	KindDeprecated     ConstraintKind = "deprecated"
	KindExample        ConstraintKind = "example"
	KindDisjoint       ConstraintKind = "disjoint"
	KindDependent      ConstraintKind = "dependent"
	KindRequired       ConstraintKind = "required"
)

// ConstraintID identifies a specific constraint within its kind, e.g.
// "value_lt", "length_ge", "encoding_base64".
type ConstraintID string

// Constraint is a single, content-interned piece of constraint metadata
// attached to a type or a record field. Two constraints built with the same
// kind, id, and args are the same instance.
type Constraint struct {
	Kind ConstraintKind
	ID   ConstraintID
	Args []any
}

var (
	constraintInternMu sync.Mutex
	constraintIntern    = map[string]*Constraint{}
)

func intern(kind ConstraintKind, id ConstraintID, args ...any) *Constraint {
	key := string(kind) + "|" + string(id) + "|" + fmt.Sprint(args)
	constraintInternMu.Lock()
	defer constraintInternMu.Unlock()
	if c, ok := constraintIntern[key]; ok {
		return c
	}
	c := &Constraint{Kind: kind, ID: id, Args: args}
	constraintIntern[key] = c
	return c
}

func ValueLT(v any) *Constraint { return intern(KindValue, "value_lt", v) }
func ValueLE(v any) *Constraint { return intern(KindValue, "value_le", v) }
func ValueGT(v any) *Constraint { return intern(KindValue, "value_gt", v) }
func ValueGE(v any) *Constraint { return intern(KindValue, "value_ge", v) }
func ValueEQ(v any) *Constraint { return intern(KindValue, "value_eq", v) }
func MultipleOf(v any) *Constraint { return intern(KindValue, "value_multiple_of", v) }

func LengthEQ(n int) *Constraint { return intern(KindLength, "length_eq", n) }
func LengthGE(n int) *Constraint { return intern(KindLength, "length_ge", n) }
func LengthLE(n int) *Constraint { return intern(KindLength, "length_le", n) }

func Pattern(re string) *Constraint { return intern(KindPattern, "pattern", re) }

const (
	EncodingBase64    = "base64"
	EncodingBase64URL = "base64url"
	EncodingBase32    = "base32"
	EncodingBase32Hex = "base32hex"
	EncodingBase16    = "base16"
)

func Encoding(name string) *Constraint { return intern(KindEncoding, "encoding", name) }

func Format(name string) *Constraint { return intern(KindFormat, "format", name) }

func Discriminator(field string) *Constraint { return intern(KindDiscriminator, "discriminator", field) }

func Alias(name string) *Constraint { return intern(KindAlias, "alias", name) }

func Default(v any) *Constraint { return intern(KindDefault, "default", v) }

// DefaultFactory constraints are not content-interned across calls (the
// factory function isn't comparable), so each call returns a fresh instance.
func DefaultFactory(fn func() any) *Constraint {
	return &Constraint{Kind: KindDefaultFactory, ID: "default_factory", Args: []any{fn}}
}

func Deprecated() *Constraint { return intern(KindDeprecated, "deprecated") }

func Example(v any) *Constraint { return &Constraint{Kind: KindExample, ID: "example", Args: []any{v}} }

func Disjoint(group string) *Constraint { return intern(KindDisjoint, "disjoint", group) }

func Dependent(group string) *Constraint { return intern(KindDependent, "dependent", group) }

func Required() *Constraint { return intern(KindRequired, "required") }

// Constraints is an ordered bag holding at most one constraint per id,
// except KindExample which accumulates a list. Adding a "default" removes
// any existing "default_factory" and vice versa, since the two are mutually
// exclusive.
type Constraints struct {
	byID     map[ConstraintID]*Constraint
	order    []ConstraintID
	examples []*Constraint
}

// NewConstraints builds a bag from a sequence of constraints, later entries
// overriding earlier ones with the same id.
func NewConstraints(cs ...*Constraint) *Constraints {
	c := &Constraints{byID: map[ConstraintID]*Constraint{}}
	for _, con := range cs {
		c.Add(con)
	}
	return c
}

// Add inserts or replaces a constraint by id, enforcing the
// default/default_factory exclusion rule.
func (c *Constraints) Add(con *Constraint) {
	if con.Kind == KindExample {
		c.examples = append(c.examples, con)
		return
	}
	var excluded ConstraintID
	switch con.ID {
	case "default":
		excluded = "default_factory"
	case "default_factory":
		excluded = "default"
	}
	if _, ok := c.byID[excluded]; ok && excluded != "" {
		delete(c.byID, excluded)
		for i, id := range c.order {
			if id == excluded {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
	}
	if _, exists := c.byID[con.ID]; !exists {
		c.order = append(c.order, con.ID)
	}
	c.byID[con.ID] = con
}

// Get returns the constraint registered under id, if any.
func (c *Constraints) Get(id ConstraintID) (*Constraint, bool) {
	if c == nil {
		return nil, false
	}
	con, ok := c.byID[id]
	return con, ok
}

// Has reports whether a constraint with id is present.
func (c *Constraints) Has(id ConstraintID) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns every constraint in insertion order, examples last.
func (c *Constraints) All() []*Constraint {
	if c == nil {
		return nil
	}
	out := make([]*Constraint, 0, len(c.order)+len(c.examples))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	out = append(out, c.examples...)
	return out
}

// Examples returns the accumulated list of example constraints.
func (c *Constraints) Examples() []*Constraint {
	if c == nil {
		return nil
	}
	return c.examples
}

// ExtendLeft returns a new bag containing other's constraints first, then
// c's, so that c's entries win on id collisions (c is "closer" to the use
// site than other).
func (c *Constraints) ExtendLeft(other *Constraints) *Constraints {
	merged := NewConstraints()
	for _, con := range other.All() {
		merged.Add(con)
	}
	for _, con := range c.All() {
		merged.Add(con)
	}
	return merged
}

// Signature returns a deterministic string identifying the bag's content,
// used as part of handler cache keys (Go map keys must be comparable;
// canonical types and records aren't, so a signature string substitutes for
// Python's tuple-hash-based interning).
func (c *Constraints) Signature() string {
	if c == nil || (len(c.order) == 0 && len(c.examples) == 0) {
		return ""
	}
	ids := append([]ConstraintID{}, c.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for _, id := range ids {
		con := c.byID[id]
		fmt.Fprintf(&b, "%s:%s=%v;", con.Kind, con.ID, con.Args)
	}
	for _, ex := range c.examples {
		fmt.Fprintf(&b, "example=%v;", ex.Args)
	}
	return b.String()
}
