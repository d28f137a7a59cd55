package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintInterning(t *testing.T) {
	a := ValueGE(0)
	b := ValueGE(0)
	assert.Same(t, a, b, "constraints built from the same kind/id/args are interned")

	c := ValueGE(1)
	assert.NotSame(t, a, c)
}

func TestConstraintsAddReplacesByID(t *testing.T) {
	cs := NewConstraints(LengthGE(1))
	cs.Add(LengthGE(5))

	con, ok := cs.Get("length_ge")
	require.True(t, ok)
	assert.Equal(t, []any{5}, con.Args)
	assert.Len(t, cs.All(), 1, "replacing by id must not leave a stale entry")
}

func TestConstraintsDefaultExcludesFactory(t *testing.T) {
	cs := NewConstraints()
	cs.Add(DefaultFactory(func() any { return 1 }))
	cs.Add(Default("x"))

	assert.False(t, cs.Has("default_factory"))
	assert.True(t, cs.Has("default"))
}

func TestConstraintsFactoryExcludesDefault(t *testing.T) {
	cs := NewConstraints()
	cs.Add(Default("x"))
	cs.Add(DefaultFactory(func() any { return 1 }))

	assert.False(t, cs.Has("default"))
	assert.True(t, cs.Has("default_factory"))
}

func TestConstraintsExamplesAccumulate(t *testing.T) {
	cs := NewConstraints(Example(1), Example(2))
	assert.Len(t, cs.Examples(), 2)
	all := cs.All()
	assert.Equal(t, cs.Examples()[0], all[len(all)-1], "examples are ordered last in All()")
}

func TestConstraintsExtendLeft(t *testing.T) {
	base := NewConstraints(ValueGE(0), Pattern("a"))
	overlay := NewConstraints(ValueGE(5))

	merged := overlay.ExtendLeft(base)
	con, ok := merged.Get("value_ge")
	require.True(t, ok)
	assert.Equal(t, []any{5}, con.Args, "overlay's own constraint wins on id collision")
	assert.True(t, merged.Has("pattern"))
}

func TestConstraintsNilSafety(t *testing.T) {
	var cs *Constraints
	assert.False(t, cs.Has("anything"))
	assert.Nil(t, cs.All())
	assert.Nil(t, cs.Examples())
	_, ok := cs.Get("x")
	assert.False(t, ok)
}

func TestConstraintsSignatureDeterministic(t *testing.T) {
	a := NewConstraints(ValueGE(1), LengthLE(3))
	b := NewConstraints(LengthLE(3), ValueGE(1))
	assert.Equal(t, a.Signature(), b.Signature(), "signature must not depend on insertion order")
}

func TestConstraintsSignatureEmpty(t *testing.T) {
	assert.Equal(t, "", NewConstraints().Signature())
	var cs *Constraints
	assert.Equal(t, "", cs.Signature())
}
