package jsonproto

import (
	"bufio"
	"io"

	json "github.com/goccy/go-json"
)

// JSONSerializer is the default Serializer, backed by goccy/go-json for its
// lower allocation overhead relative to encoding/json on the hot
// handler-call path.
type JSONSerializer struct{}

func (JSONSerializer) Encoding() string { return "json" }

func (JSONSerializer) FromStr(s string) (any, error) {
	var v any
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

func (JSONSerializer) ToStr(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func (JSONSerializer) FromBytes(b []byte) (any, error) {
	var v any
	err := json.Unmarshal(b, &v)
	return v, err
}

func (JSONSerializer) ToBytes(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer) FromBinaryStream(r io.Reader) (any, error) {
	var v any
	err := json.NewDecoder(r).Decode(&v)
	return v, err
}

func (JSONSerializer) ToBinaryStream(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func (s JSONSerializer) FromTextStream(r io.Reader) (any, error) {
	return s.FromBinaryStream(bufio.NewReader(r))
}

func (s JSONSerializer) ToTextStream(w io.Writer, v any) error {
	bw := bufio.NewWriter(w)
	if err := s.ToBinaryStream(bw, v); err != nil {
		return err
	}
	return bw.Flush()
}
