package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScalarOrigins(t *testing.T) {
	r := NewResolver()
	tests := []struct {
		expr TypeExpr
		want Origin
	}{
		{Bool(), OriginBool},
		{Null(), OriginNull},
		{Int(), OriginInt},
		{Float(), OriginFloat},
		{Decimal(), OriginDecimal},
		{Str(), OriginString},
		{Bytes(), OriginBytes},
		{Any(), OriginAny},
	}
	for _, tt := range tests {
		ct := r.Resolve(tt.expr, nil, true)
		assert.Equal(t, tt.want, ct.Origin)
		assert.False(t, ct.IsPartial)
	}
}

func TestResolveIsMemoizedByIdentity(t *testing.T) {
	r := NewResolver()
	a := r.Resolve(Str(), nil, true)
	b := r.Resolve(Str(), nil, true)
	assert.Same(t, a, b, "identical structural signatures resolve to the same cached CanonicalType")
}

func TestResolveAnnotatedMergesConstraints(t *testing.T) {
	r := NewResolver()
	ct := r.Resolve(Annotated(Str(), LengthGE(2), Format("email")), nil, true)
	assert.Equal(t, OriginString, ct.Origin)
	assert.True(t, ct.Annotations.Has("length_ge"))
	assert.True(t, ct.Annotations.Has("format"))
}

func TestResolveSequenceAndMapping(t *testing.T) {
	r := NewResolver()

	seq := r.Resolve(Seq(Int()), nil, true)
	assert.Equal(t, OriginSequence, seq.Origin)
	require.Len(t, seq.Parameters, 1)
	assert.Equal(t, OriginInt, seq.Parameters[0].Origin)

	m := r.Resolve(Mapping(Str(), Int()), nil, true)
	assert.Equal(t, OriginMapping, m.Origin)
	require.Len(t, m.Parameters, 2)
	assert.Equal(t, OriginString, m.Parameters[0].Origin)
	assert.Equal(t, OriginInt, m.Parameters[1].Origin)
}

func TestResolveUnionPropagatesPartial(t *testing.T) {
	r := NewResolver()
	u := r.Resolve(Union(Str(), ForwardRef("Missing")), nil, true)
	assert.Equal(t, OriginUnion, u.Origin)
	assert.True(t, u.IsPartial, "a union with an unresolved forward-ref arm is itself partial")
}

func TestResolveForwardRefWithoutOwnerStaysPartial(t *testing.T) {
	r := NewResolver()
	ct := r.Resolve(ForwardRef("Node"), nil, true)
	assert.True(t, ct.IsPartial)
	assert.Equal(t, "Node", ct.Name)
}

func TestResolveForwardRefDisabledStaysPartial(t *testing.T) {
	r := NewResolver()
	rt := &RecordType{Defs: map[string]TypeExpr{"Node": Str()}}
	ct := r.Resolve(ForwardRef("Node"), rt, false)
	assert.True(t, ct.IsPartial)
}

func TestResolveForwardRefThroughOwnerDefs(t *testing.T) {
	r := NewResolver()
	rt := &RecordType{Defs: map[string]TypeExpr{"Node": Str()}}
	ct := r.Resolve(ForwardRef("Node"), rt, true)
	assert.Equal(t, OriginString, ct.Origin)
	assert.False(t, ct.IsPartial)
}

func TestResolveForwardRefCycleStaysPartial(t *testing.T) {
	r := NewResolver()
	rt := &RecordType{}
	rt.Defs = map[string]TypeExpr{"Node": ForwardRef("Node")}
	ct := r.Resolve(ForwardRef("Node"), rt, true)
	assert.True(t, ct.IsPartial, "a self-referential forward ref must not resolve forever")
}

func TestCanonicalTypeKeyStable(t *testing.T) {
	r := NewResolver()
	a := r.Resolve(Seq(Int()), nil, true)
	b := r.Resolve(Seq(Int()), nil, true)
	assert.Equal(t, a.Key(), b.Key())
}

func TestCanonicalTypeKeyDiffersByAnnotation(t *testing.T) {
	r := NewResolver()
	plain := r.Resolve(Str(), nil, true)
	annotated := r.Resolve(Annotated(Str(), Format("uuid")), nil, true)
	assert.NotEqual(t, plain.Key(), annotated.Key())
}

func TestCanonicalTypeIs(t *testing.T) {
	ct := &CanonicalType{Origin: OriginInt}
	assert.True(t, ct.Is(OriginFloat, OriginInt))
	assert.False(t, ct.Is(OriginFloat, OriginString))
}

func TestCanonicalTypeWithAnnotationsOverlaysOnTop(t *testing.T) {
	base := &CanonicalType{Origin: OriginString, Annotations: NewConstraints(LengthGE(1))}
	merged := base.WithAnnotations([]*Constraint{LengthGE(5)})
	con, ok := merged.Annotations.Get("length_ge")
	require.True(t, ok)
	assert.Equal(t, []any{5}, con.Args)
	assert.NotSame(t, base, merged)
}

func TestCanonicalTypeWithNoAnnotationsReturnsSameInstance(t *testing.T) {
	base := &CanonicalType{Origin: OriginString}
	assert.Same(t, base, base.WithAnnotations(nil))
}

func TestOptBuildsNullableUnion(t *testing.T) {
	expr := Opt(Str())
	assert.Equal(t, OriginUnion, expr.Origin)
	require.Len(t, expr.Params, 2)
	assert.Equal(t, OriginString, expr.Params[0].Origin)
	assert.Equal(t, OriginNull, expr.Params[1].Origin)
}
