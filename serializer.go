package jsonproto

import "io"

// Serializer converts between a tree-shaped value (maps/slices/scalars,
// the engine's "JSON form") and one of several wire representations. The
// tree shape is always JSON-like regardless of the concrete wire format, so
// a YAML serializer and a JSON serializer are interchangeable from the
// codec driver's point of view (spec's pluggable-serializer contract).
type Serializer interface {
	Encoding() string
	FromStr(s string) (any, error)
	ToStr(v any) (string, error)
	FromBytes(b []byte) (any, error)
	ToBytes(v any) ([]byte, error)
	FromBinaryStream(r io.Reader) (any, error)
	ToBinaryStream(w io.Writer, v any) error
	FromTextStream(r io.Reader) (any, error)
	ToTextStream(w io.Writer, v any) error
}
