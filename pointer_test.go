package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerRootString(t *testing.T) {
	assert.Equal(t, "$", Root.String())
	assert.True(t, Root.IsRoot())
	assert.Nil(t, Root.Parent())
}

func TestPointerFieldAndIndex(t *testing.T) {
	tests := []struct {
		name string
		ptr  *Pointer
		want string
	}{
		{"field", Root.Field("name"), "$.name"},
		{"index", Root.Index(3), "$[3]"},
		{"nested", Root.Field("a").Index(0).Field("b"), "$.a[0].b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ptr.String())
			assert.False(t, tt.ptr.IsRoot())
		})
	}
}

func TestPointerJoinInterning(t *testing.T) {
	a := Root.Field("x")
	b := Root.Field("x")
	assert.Same(t, a, b, "joining the same atom twice from the same parent must return the same instance")
}

func TestPointerAtoms(t *testing.T) {
	p := Root.Field("a").Index(2).Field("b")
	atoms := p.Atoms()
	require.Len(t, atoms, 3)
	assert.Equal(t, "a", atoms[0].Field)
	assert.True(t, atoms[1].IsIndex)
	assert.Equal(t, 2, atoms[1].Index)
	assert.Equal(t, "b", atoms[2].Field)
}

func TestPointerJSONPointer(t *testing.T) {
	p := Root.Field("a").Index(0).Field("b~c")
	assert.Equal(t, "/a/0/b~0c", p.JSONPointer())
	assert.Equal(t, "", Root.JSONPointer())
}

func TestPointerCompare(t *testing.T) {
	a := Root.Field("a")
	b := Root.Field("b")
	ab := Root.Field("a").Field("b")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(Root.Field("a")))
	assert.Equal(t, -1, a.Compare(ab), "a prefix pointer sorts before its own child")
}
