package jsonproto

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Atom is a single step in a Pointer: either a mapping-field name or a
// sequence index.
type Atom struct {
	Field   string
	Index   int
	IsIndex bool
}

func FieldAtom(name string) Atom { return Atom{Field: name} }
func IndexAtom(i int) Atom       { return Atom{Index: i, IsIndex: true} }

func (a Atom) String() string {
	if a.IsIndex {
		return fmt.Sprintf("[%d]", a.Index)
	}
	return a.Field
}

// Pointer addresses a location within a value tree. Pointers are
// content-interned: joining the same atom onto the same parent returns the
// same instance for as long as that child stays in the parent's bounded LRU
// child cache, so equality can be tested with ==; a child evicted from that
// cache is rebuilt as a new instance on the next Join.
// Root is the distinguished singleton with an empty atom sequence.
type Pointer struct {
	parent  *Pointer
	atom    Atom
	hasAtom bool
	depth   int

	strOnce sync.Once
	str     string

	childrenMu sync.Mutex
	children   *lru.Cache[Atom, *Pointer]
}

// Root is the singleton pointer denoting the whole value, rendered "$".
var Root = &Pointer{}

// Join returns the child pointer reached by appending atom, reusing a
// previously built child for the same atom when one exists.
func (p *Pointer) Join(atom Atom) *Pointer {
	p.childrenMu.Lock()
	defer p.childrenMu.Unlock()
	if p.children == nil {
		c, _ := lru.New[Atom, *Pointer](1024)
		p.children = c
	}
	if child, ok := p.children.Get(atom); ok {
		return child
	}
	child := &Pointer{parent: p, atom: atom, hasAtom: true, depth: p.depth + 1}
	p.children.Add(atom, child)
	return child
}

// Field returns the child pointer for a mapping field name.
func (p *Pointer) Field(name string) *Pointer { return p.Join(FieldAtom(name)) }

// Index returns the child pointer for a sequence index.
func (p *Pointer) Index(i int) *Pointer { return p.Join(IndexAtom(i)) }

// Parent returns the pointer one level up, or nil at Root.
func (p *Pointer) Parent() *Pointer { return p.parent }

// IsRoot reports whether p is the Root singleton.
func (p *Pointer) IsRoot() bool { return !p.hasAtom }

// Atoms returns the full atom sequence from root to p.
func (p *Pointer) Atoms() []Atom {
	atoms := make([]Atom, 0, p.depth)
	for cur := p; cur.hasAtom; cur = cur.parent {
		atoms = append(atoms, cur.atom)
	}
	for i, j := 0, len(atoms)-1; i < j; i, j = i+1, j-1 {
		atoms[i], atoms[j] = atoms[j], atoms[i]
	}
	return atoms
}

// String renders the pointer in its dollar-rooted textual form, e.g.
// "$", "$.name", "$[3]", "$.a[0].b". A '.' is never emitted directly
// before a bracketed index atom.
func (p *Pointer) String() string {
	p.strOnce.Do(func() {
		if !p.hasAtom {
			p.str = "$"
			return
		}
		parent := p.parent.String()
		if p.atom.IsIndex {
			p.str = fmt.Sprintf("%s[%d]", parent, p.atom.Index)
		} else {
			p.str = parent + "." + p.atom.Field
		}
	})
	return p.str
}

// JSONPointer renders p as an RFC 6901 JSON Pointer ("/a/0/b") rather than
// the engine's native "$"-rooted form, for interop with diagnostic tooling
// that expects the standard syntax.
func (p *Pointer) JSONPointer() string {
	atoms := p.Atoms()
	if len(atoms) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range atoms {
		b.WriteByte('/')
		if a.IsIndex {
			fmt.Fprintf(&b, "%d", a.Index)
		} else {
			b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(a.Field))
		}
	}
	return b.String()
}

// Compare defines a total order over pointers by comparing their atom
// sequences lexicographically (shorter is "less" when one is a prefix of
// the other).
func (p *Pointer) Compare(other *Pointer) int {
	a, b := p.Atoms(), other.Atoms()
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			as, bs := a[i].String(), b[i].String()
			if as < bs {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
