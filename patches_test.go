package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchSetApplySetOverwritesValue(t *testing.T) {
	ps := NewPatchSet(SetPatch(NewPath("$.name"), "overridden"))

	value, present, applied := ps.Apply(Root.Field("name"), "original", true)
	assert.True(t, applied)
	assert.True(t, present)
	assert.Equal(t, "overridden", value)
}

func TestPatchSetApplyRemoveDropsValue(t *testing.T) {
	ps := NewPatchSet(RemovePatch(NewPath("$.name")))

	value, present, applied := ps.Apply(Root.Field("name"), "original", true)
	assert.True(t, applied)
	assert.False(t, present)
	assert.Nil(t, value)
}

func TestPatchSetApplyDefaultOnlyWhenAbsent(t *testing.T) {
	ps := NewPatchSet(DefaultPatch(NewPath("$.name"), "fallback"))

	value, present, applied := ps.Apply(Root.Field("name"), nil, false)
	assert.True(t, applied)
	assert.True(t, present)
	assert.Equal(t, "fallback", value)

	value, present, applied = ps.Apply(Root.Field("name"), "kept", true)
	assert.False(t, applied)
	assert.True(t, present)
	assert.Equal(t, "kept", value)
}

func TestPatchSetApplyNoMatchLeavesValueUntouched(t *testing.T) {
	ps := NewPatchSet(SetPatch(NewPath("$.other"), "x"))

	value, present, applied := ps.Apply(Root.Field("name"), "original", true)
	assert.False(t, applied)
	assert.True(t, present)
	assert.Equal(t, "original", value)
}

func TestPatchSetFirstMatchingPatchWins(t *testing.T) {
	ps := NewPatchSet(
		SetPatch(NewPath("$.name"), "first"),
		SetPatch(NewPath("$.name"), "second"),
	)

	value, _, applied := ps.Apply(Root.Field("name"), "original", true)
	assert.True(t, applied)
	assert.Equal(t, "first", value)
}

func TestPatchSetLookupIsMemoized(t *testing.T) {
	ps := NewPatchSet(SetPatch(NewPath("$.name"), "x"))
	ptr := Root.Field("name")

	first := ps.lookup(ptr)
	second := ps.lookup(ptr)
	assert.Same(t, first, second)
}

func TestPatchSetLookupMemoizesMisses(t *testing.T) {
	ps := NewPatchSet(SetPatch(NewPath("$.other"), "x"))
	ptr := Root.Field("name")

	assert.Nil(t, ps.lookup(ptr))
	assert.Nil(t, ps.lookup(ptr))
}

func TestNilPatchSetApplyIsNoop(t *testing.T) {
	var ps *PatchSet
	value, present, applied := ps.Apply(Root.Field("name"), "original", true)
	assert.False(t, applied)
	assert.True(t, present)
	assert.Equal(t, "original", value)
}
