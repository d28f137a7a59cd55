package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesHandlerPassthroughRawBytes(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	result, issues := h.Handle([]byte("hi"), Root, NewConfig().WithTarget(ShapeStruct))
	assert.Empty(t, issues)
	assert.Equal(t, []byte("hi"), result)
}

func TestBytesHandlerDecodesBase64StringForStructTarget(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	result, issues := h.Handle("aGVsbG8=", Root, NewConfig().WithTarget(ShapeStruct))
	assert.Empty(t, issues)
	assert.Equal(t, []byte("hello"), result)
}

func TestBytesHandlerLeavesStringUntouchedForJSONTarget(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	result, issues := h.Handle("aGVsbG8=", Root, NewConfig().WithTarget(ShapeJSON))
	assert.Empty(t, issues)
	assert.Equal(t, "aGVsbG8=", result)
}

func TestBytesHandlerEncodesToStringForJSONTarget(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)
	cfg := NewConfig().WithConvert(true).WithTarget(ShapeJSON)

	result, issues := h.Handle([]byte("hello"), Root, cfg)
	assert.Empty(t, issues)
	assert.Equal(t, "aGVsbG8=", result)
}

func TestBytesHandlerRejectsMalformedBase64(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	_, issues := h.Handle("not base64!!", Root, NewConfig().WithTarget(ShapeStruct))
	require.Len(t, issues, 1)
	assert.Equal(t, IssueDecoding, issues[0].Kind)
}

func TestBytesHandlerAlternateEncodings(t *testing.T) {
	tests := []struct {
		encoding string
	}{
		{EncodingBase64URL},
		{EncodingBase32},
		{EncodingBase32Hex},
		{EncodingBase16},
	}
	for _, tt := range tests {
		ct := DefaultResolver.Resolve(Annotated(Bytes(), Encoding(tt.encoding)), nil, true)
		h := buildHandler(t, newBytesHandler, ct)
		cfg := NewConfig().WithConvert(true).WithTarget(ShapeJSON)

		encoded, issues := h.Handle([]byte("round-trip"), Root, cfg)
		require.Empty(t, issues)

		decodeCfg := NewConfig().WithTarget(ShapeStruct)
		decoded, issues := h.Handle(encoded, Root, decodeCfg)
		require.Empty(t, issues)
		assert.Equal(t, []byte("round-trip"), decoded, "encoding=%s", tt.encoding)
	}
}

func TestBytesHandlerLengthBound(t *testing.T) {
	ct := DefaultResolver.Resolve(Annotated(Bytes(), LengthLE(3)), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	_, issues := h.Handle([]byte("toolong"), Root, NewConfig().WithTarget(ShapeStruct))
	require.Len(t, issues, 1)
	assert.Equal(t, IssueLength, issues[0].Kind)
}

func TestBytesHandlerRejectsNonBytesNonString(t *testing.T) {
	ct := DefaultResolver.Resolve(Bytes(), nil, true)
	h := buildHandler(t, newBytesHandler, ct)

	_, issues := h.Handle(5, Root, NewConfig())
	require.Len(t, issues, 1)
	assert.Equal(t, IssueJSONType, issues[0].Kind)
}
