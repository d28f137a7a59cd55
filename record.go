package jsonproto

import (
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FieldDescriptor is one field of a declared record type: its Go struct
// field, its wire alias, its resolved type, and whatever constraints and
// lifecycle metadata (default, dependent/disjoint group membership, kwonly,
// computed) the tag declared.
type FieldDescriptor struct {
	Name       string
	Alias      string
	TypeExpr   TypeExpr
	Canonical  *CanonicalType
	Default    any
	HasDefault bool
	Constraints *Constraints
	KWOnly     bool
	Computed   bool
	GoIndex    []int
}

// RecordType is the lazily-computed schema of a Go struct: its field
// descriptors, alias table, dependent/disjoint groups, and declared extras
// policy. Computed once per reflect.Type on first use and cached.
type RecordType struct {
	GoType       reflect.Type
	Fields       []*FieldDescriptor
	FieldByName  map[string]*FieldDescriptor
	FieldByAlias map[string]*FieldDescriptor

	DependentGroups [][]string
	DisjointGroups  [][]string
	ExtrasMode      ExtrasMode

	Defs map[string]TypeExpr

	mu       sync.Mutex
	state    uint8 // 0 unbuilt, 1 building, 2 built
	buildErr error
}

var (
	recordRegistryMu sync.Mutex
	recordRegistry   = map[reflect.Type]*RecordType{}
)

// Name returns the declared Go type's name, used in canonical-type
// signatures and forward-ref scoping.
func (r *RecordType) Name() string {
	if r == nil || r.GoType == nil {
		return "<anonymous>"
	}
	return r.GoType.String()
}

// DeclareRecord returns the (cached) RecordType describing goType, building
// it from struct tags on first use. goType may be a struct type or a
// pointer to one; pointer types are dereferenced to the struct type.
func DeclareRecord(goType reflect.Type) *RecordType {
	for goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}
	recordRegistryMu.Lock()
	if rt, ok := recordRegistry[goType]; ok {
		recordRegistryMu.Unlock()
		rt.ensure()
		return rt
	}
	rt := &RecordType{GoType: goType, ExtrasMode: ExtrasForbid}
	recordRegistry[goType] = rt
	recordRegistryMu.Unlock()
	rt.ensure()
	return rt
}

// ensure builds the record schema on first use. Guards against reentrant
// calls (a self-referential struct, e.g. a linked-list Node holding a
// *Node field, triggers DeclareRecord for its own type while already
// building it) by returning immediately rather than deadlocking or
// recursing forever; the in-progress Fields slice is filled in as the
// outer build proceeds, so a forward reference to oneself resolves once
// that outer call finishes.
func (r *RecordType) ensure() {
	r.mu.Lock()
	if r.state != 0 {
		r.mu.Unlock()
		return
	}
	r.state = 1
	r.mu.Unlock()

	err := r.build()

	r.mu.Lock()
	r.buildErr = err
	r.state = 2
	r.mu.Unlock()
}

func (r *RecordType) build() error {
	r.FieldByName = map[string]*FieldDescriptor{}
	r.FieldByAlias = map[string]*FieldDescriptor{}
	dependentGroups := map[string][]string{}
	disjointGroups := map[string][]string{}

	for i := 0; i < r.GoType.NumField(); i++ {
		sf := r.GoType.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup("jsonproto")
		if ok && tag == "-" {
			continue
		}
		cs, info := parseFieldTag(tag)

		fd := &FieldDescriptor{
			Name:        sf.Name,
			Alias:       info.Alias,
			Constraints: cs,
			HasDefault:  info.HasDefault,
			Default:     info.Default,
			KWOnly:      info.KWOnly,
			Computed:    info.Computed,
			GoIndex:     sf.Index,
		}
		if fd.Alias == "" {
			fd.Alias = sf.Name
		}
		base := goTypeToExpr(sf.Type)
		if len(cs.All()) > 0 {
			base = Annotated(base, cs.All()...)
		}
		fd.TypeExpr = base

		r.Fields = append(r.Fields, fd)
		r.FieldByName[fd.Name] = fd
		r.FieldByAlias[fd.Alias] = fd

		for _, g := range info.Dependent {
			dependentGroups[g] = append(dependentGroups[g], fd.Name)
		}
		for _, g := range info.Disjoint {
			disjointGroups[g] = append(disjointGroups[g], fd.Name)
		}
	}

	r.DependentGroups = mergeTransitive(dependentGroups)
	for _, group := range disjointGroups {
		r.DisjointGroups = append(r.DisjointGroups, group)
	}

	for _, fd := range r.Fields {
		fd.Canonical = DefaultResolver.Resolve(fd.TypeExpr, r, true)
	}
	return nil
}

// mergeTransitive merges named groups that share a member into one group,
// matching the transitive-union merge spec.md mandates for dependent
// groups (two fields each dependent on a third are one group, not two).
func mergeTransitive(named map[string][]string) [][]string {
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] == "" || parent[x] == x {
			parent[x] = x
			return x
		}
		parent[x] = find(parent[x])
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, members := range named {
		for _, m := range members {
			find(m)
		}
		for i := 1; i < len(members); i++ {
			union(members[0], members[i])
		}
	}
	groups := map[string]map[string]bool{}
	for _, members := range named {
		for _, m := range members {
			root := find(m)
			if groups[root] == nil {
				groups[root] = map[string]bool{}
			}
			groups[root][m] = true
		}
	}
	var out [][]string
	for _, set := range groups {
		var g []string
		for m := range set {
			g = append(g, m)
		}
		out = append(out, g)
	}
	return out
}

// goTypeToExpr derives a default TypeExpr from a Go field type's shape.
// Field tags then overlay constraints (format, pattern, bounds) on top via
// Annotated. time.Time and uuid.UUID get their format constraint baked in
// here since it's intrinsic to the Go type, not something a tag need repeat.
func goTypeToExpr(t reflect.Type) TypeExpr {
	switch t {
	case reflect.TypeOf(time.Time{}):
		return Annotated(Str(), Format("date-time"))
	case reflect.TypeOf(uuid.UUID{}):
		return Annotated(Str(), Format("uuid"))
	case reflect.TypeOf(big.Rat{}):
		return Decimal()
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool()
	case reflect.String:
		return Str()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Float()
	case reflect.Ptr:
		return Opt(goTypeToExpr(t.Elem()))
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Bytes()
		}
		return Seq(goTypeToExpr(t.Elem()))
	case reflect.Array:
		return Seq(goTypeToExpr(t.Elem()))
	case reflect.Map:
		return Mapping(goTypeToExpr(t.Key()), goTypeToExpr(t.Elem()))
	case reflect.Struct:
		return RecordOf(DeclareRecord(t))
	case reflect.Interface:
		return Any()
	default:
		return Any()
	}
}
