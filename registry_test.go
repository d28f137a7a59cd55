package jsonproto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	baseHandler
	tag string
}

func (h *stubHandler) Handle(value any, _ *Pointer, _ *Config) (any, []*Issue) {
	return h.tag, nil
}

func newStubHandler(tag string) HandlerFactory {
	return func(*CanonicalType, any, *Registry) Handler {
		return &stubHandler{tag: tag}
	}
}

func TestRegistryOriginLookup(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterOrigin(OriginString, newStubHandler("string-handler"))

	h, err := reg.Handler(&CanonicalType{Origin: OriginString}, nil, "")
	require.NoError(t, err)
	result, _ := h.Handle(nil, Root, nil)
	assert.Equal(t, "string-handler", result)
}

func TestRegistryUnknownOriginErrors(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.Handler(&CanonicalType{Origin: OriginString}, nil, "")
	assert.ErrorIs(t, err, ErrNoHandlerForType)
}

func TestRegistryHintTakesPriorityOverOrigin(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterOrigin(OriginString, newStubHandler("by-origin"))
	reg.RegisterHint("custom.Type", newStubHandler("by-hint"))

	h, err := reg.Handler(&CanonicalType{Origin: OriginString}, nil, "custom.Type")
	require.NoError(t, err)
	result, _ := h.Handle(nil, Root, nil)
	assert.Equal(t, "by-hint", result)
}

func TestRegistryPredicateFallback(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterPredicate(func(ct *CanonicalType) bool {
		return ct.Record != nil && ct.Record.Name() == "tagged"
	}, newStubHandler("by-predicate"))

	ct := &CanonicalType{Origin: OriginRecord, Record: &RecordType{}}
	_, err := reg.Handler(ct, nil, "")
	assert.Error(t, err, "predicate does not match an anonymous record, so lookup still misses")
}

func TestRegistryChildDelegatesToParent(t *testing.T) {
	parent := NewRegistry(nil)
	parent.RegisterOrigin(OriginBool, newStubHandler("parent-bool"))
	child := parent.Child()

	h, err := child.Handler(&CanonicalType{Origin: OriginBool}, nil, "")
	require.NoError(t, err)
	result, _ := h.Handle(nil, Root, nil)
	assert.Equal(t, "parent-bool", result)
}

func TestRegistryChildOverridesParent(t *testing.T) {
	parent := NewRegistry(nil)
	parent.RegisterOrigin(OriginBool, newStubHandler("parent-bool"))
	child := parent.Child()
	child.RegisterOrigin(OriginBool, newStubHandler("child-bool"))

	h, err := child.Handler(&CanonicalType{Origin: OriginBool}, nil, "")
	require.NoError(t, err)
	result, _ := h.Handle(nil, Root, nil)
	assert.Equal(t, "child-bool", result)
}

func TestRegistryHandlerIsMemoized(t *testing.T) {
	reg := NewRegistry(nil)
	calls := 0
	reg.RegisterOrigin(OriginBool, func(*CanonicalType, any, *Registry) Handler {
		calls++
		return &stubHandler{tag: "bool"}
	})

	ct := &CanonicalType{Origin: OriginBool}
	_, err := reg.Handler(ct, nil, "")
	require.NoError(t, err)
	_, err = reg.Handler(ct, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "a second lookup for the same key must reuse the cached instance")
}

func TestRegistryInvalidatesCacheOnReregister(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterOrigin(OriginBool, newStubHandler("first"))
	ct := &CanonicalType{Origin: OriginBool}

	h1, err := reg.Handler(ct, nil, "")
	require.NoError(t, err)
	result1, _ := h1.Handle(nil, Root, nil)
	assert.Equal(t, "first", result1)

	reg.RegisterOrigin(OriginBool, newStubHandler("second"))
	h2, err := reg.Handler(ct, nil, "")
	require.NoError(t, err)
	result2, _ := h2.Handle(nil, Root, nil)
	assert.Equal(t, "second", result2)
}

type failingBuildHandler struct{ baseHandler }

func (h *failingBuildHandler) Build() error                                         { return errors.New("build failed") }
func (h *failingBuildHandler) Handle(any, *Pointer, *Config) (any, []*Issue) { return nil, nil }

func TestRegistryHandlerPropagatesBuildError(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterOrigin(OriginBool, func(*CanonicalType, any, *Registry) Handler {
		return &failingBuildHandler{}
	})
	_, err := reg.Handler(&CanonicalType{Origin: OriginBool}, nil, "")
	assert.Error(t, err)
}

func TestDefaultRegistryHasCoreOrigins(t *testing.T) {
	for _, origin := range []Origin{
		OriginBool, OriginNull, OriginAny, OriginInt, OriginFloat, OriginDecimal,
		OriginString, OriginBytes, OriginSequence, OriginTuple, OriginMapping,
		OriginUnion, OriginLiteral, OriginEnum, OriginClassVar, OriginFinal, OriginRecord,
	} {
		_, ok := DefaultRegistry.resolveFactory(&CanonicalType{Origin: origin, Parameters: []*CanonicalType{{Origin: OriginAny}, {Origin: OriginAny}}}, "")
		assert.True(t, ok, "origin %s should have a registered factory", origin)
	}
}
