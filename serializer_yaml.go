package jsonproto

import (
	"bufio"
	"io"

	yaml "github.com/goccy/go-yaml"
)

// YAMLSerializer is a second Serializer implementation, exercising the
// same pluggable contract with a concrete alternate wire format.
type YAMLSerializer struct{}

func (YAMLSerializer) Encoding() string { return "yaml" }

func (YAMLSerializer) FromStr(s string) (any, error) {
	var v any
	err := yaml.Unmarshal([]byte(s), &v)
	return v, err
}

func (YAMLSerializer) ToStr(v any) (string, error) {
	b, err := yaml.Marshal(v)
	return string(b), err
}

func (YAMLSerializer) FromBytes(b []byte) (any, error) {
	var v any
	err := yaml.Unmarshal(b, &v)
	return v, err
}

func (YAMLSerializer) ToBytes(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (s YAMLSerializer) FromBinaryStream(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return s.FromBytes(b)
}

func (s YAMLSerializer) ToBinaryStream(w io.Writer, v any) error {
	b, err := s.ToBytes(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (s YAMLSerializer) FromTextStream(r io.Reader) (any, error) {
	return s.FromBinaryStream(bufio.NewReader(r))
}

func (s YAMLSerializer) ToTextStream(w io.Writer, v any) error {
	bw := bufio.NewWriter(w)
	if err := s.ToBinaryStream(bw, v); err != nil {
		return err
	}
	return bw.Flush()
}
