package jsonproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSerializerEncoding(t *testing.T) {
	assert.Equal(t, "json", JSONSerializer{}.Encoding())
}

func TestJSONSerializerStrRoundTrip(t *testing.T) {
	s := JSONSerializer{}
	v, err := s.FromStr(`{"name":"Ada","age":30}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada", "age": float64(30)}, v)

	out, err := s.ToStr(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":30}`, out)
}

func TestJSONSerializerBytesRoundTrip(t *testing.T) {
	s := JSONSerializer{}
	v, err := s.FromBytes([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, v)

	b, err := s.ToBytes(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(b))
}

func TestJSONSerializerBinaryStreamRoundTrip(t *testing.T) {
	s := JSONSerializer{}
	var buf bytes.Buffer
	require.NoError(t, s.ToBinaryStream(&buf, map[string]any{"ok": true}))

	v, err := s.FromBinaryStream(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, v)
}

func TestJSONSerializerTextStreamRoundTrip(t *testing.T) {
	s := JSONSerializer{}
	var buf bytes.Buffer
	require.NoError(t, s.ToTextStream(&buf, []any{"a", "b"}))

	v, err := s.FromTextStream(&buf)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v)
}

func TestJSONSerializerFromStrRejectsMalformedInput(t *testing.T) {
	s := JSONSerializer{}
	_, err := s.FromStr(`{not valid json`)
	assert.Error(t, err)
}
