package jsonproto

import "sync"

// PatchOp names what a Patch does to the value at its target location.
type PatchOp string

const (
	// PatchSetValue overwrites the value unconditionally.
	PatchSetValue PatchOp = "set"
	// PatchRemove drops the field/element entirely.
	PatchRemove PatchOp = "remove"
	// PatchDefault supplies a value only when the target is absent.
	PatchDefault PatchOp = "default"
)

// Patch is one targeted edit applied by the codec driver before a value is
// handed to the handler tree, letting callers inject or override values at
// specific locations without rebuilding the whole input.
type Patch struct {
	Target Path
	Op     PatchOp
	Value  any
}

func SetPatch(target Path, value any) *Patch     { return &Patch{Target: target, Op: PatchSetValue, Value: value} }
func RemovePatch(target Path) *Patch             { return &Patch{Target: target, Op: PatchRemove} }
func DefaultPatch(target Path, value any) *Patch { return &Patch{Target: target, Op: PatchDefault, Value: value} }

// patchMiss is the memoized "no patch matches this pointer" sentinel,
// distinct from a nil *Patch used as a zero value, so the cache can tell
// "not yet looked up" apart from "looked up, found nothing".
var patchMiss = &Patch{}

// PatchSet holds an ordered collection of patches and resolves, for any
// given pointer, the first one whose Target matches -- memoizing both hits
// and misses so a deeply nested value tree doesn't re-scan the whole patch
// list per node.
type PatchSet struct {
	patches []*Patch

	mu    sync.Mutex
	cache map[*Pointer]*Patch
}

// NewPatchSet builds a PatchSet from an ordered slice of patches; earlier
// entries take priority when more than one target matches the same
// pointer.
func NewPatchSet(patches ...*Patch) *PatchSet {
	return &PatchSet{patches: patches, cache: map[*Pointer]*Patch{}}
}

func (ps *PatchSet) lookup(ptr *Pointer) *Patch {
	if ps == nil {
		return nil
	}
	ps.mu.Lock()
	if cached, ok := ps.cache[ptr]; ok {
		ps.mu.Unlock()
		if cached == patchMiss {
			return nil
		}
		return cached
	}
	ps.mu.Unlock()

	var found *Patch
	for _, p := range ps.patches {
		if p.Target.Matches(ptr) {
			found = p
			break
		}
	}

	ps.mu.Lock()
	if found != nil {
		ps.cache[ptr] = found
	} else {
		ps.cache[ptr] = patchMiss
	}
	ps.mu.Unlock()
	return found
}

// Apply resolves the patch (if any) targeting ptr and applies it to
// (value, present). It returns the possibly-modified value, whether the
// field should still be considered present, and whether any patch fired.
func (ps *PatchSet) Apply(ptr *Pointer, value any, present bool) (any, bool, bool) {
	patch := ps.lookup(ptr)
	if patch == nil {
		return value, present, false
	}
	switch patch.Op {
	case PatchSetValue:
		return patch.Value, true, true
	case PatchRemove:
		return nil, false, true
	case PatchDefault:
		if present {
			return value, present, false
		}
		return patch.Value, true, true
	default:
		return value, present, false
	}
}
