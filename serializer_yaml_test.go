package jsonproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLSerializerEncoding(t *testing.T) {
	assert.Equal(t, "yaml", YAMLSerializer{}.Encoding())
}

func TestYAMLSerializerFromStrParsesMapping(t *testing.T) {
	s := YAMLSerializer{}
	v, err := s.FromStr("name: Ada\ncity: Boston\n")
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", m["name"])
	assert.Equal(t, "Boston", m["city"])
}

func TestYAMLSerializerFromStrParsesSequence(t *testing.T) {
	s := YAMLSerializer{}
	v, err := s.FromStr("- a\n- b\n- c\n")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, v)
}

func TestYAMLSerializerToStrProducesParsableYAML(t *testing.T) {
	s := YAMLSerializer{}
	out, err := s.ToStr(map[string]any{"key": "value"})
	require.NoError(t, err)

	v, err := s.FromStr(out)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "value", m["key"])
}

func TestYAMLSerializerBytesRoundTrip(t *testing.T) {
	s := YAMLSerializer{}
	b, err := s.ToBytes(map[string]any{"greeting": "hello"})
	require.NoError(t, err)

	v, err := s.FromBytes(b)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", m["greeting"])
}

func TestYAMLSerializerBinaryStreamRoundTrip(t *testing.T) {
	s := YAMLSerializer{}
	var buf bytes.Buffer
	require.NoError(t, s.ToBinaryStream(&buf, map[string]any{"status": "ok"}))

	v, err := s.FromBinaryStream(&buf)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", m["status"])
}

func TestYAMLSerializerTextStreamRoundTrip(t *testing.T) {
	s := YAMLSerializer{}
	var buf bytes.Buffer
	require.NoError(t, s.ToTextStream(&buf, []any{"x", "y"}))

	v, err := s.FromTextStream(&buf)
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, v)
}

func TestYAMLSerializerFromStrRejectsMalformedInput(t *testing.T) {
	s := YAMLSerializer{}
	_, err := s.FromStr("key: [unterminated flow sequence\n")
	assert.Error(t, err)
}
