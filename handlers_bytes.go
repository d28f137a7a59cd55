package jsonproto

import (
	"encoding/base32"
	"encoding/base64"
)

func init() {
	DefaultRegistry.RegisterOrigin(OriginBytes, newBytesHandler)
}

type bytesHandler struct {
	baseHandler
	encoding string
	lenBound numericBounds
}

func newBytesHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &bytesHandler{encoding: EncodingBase64}
	h.buildFn = func() error {
		if ct.Annotations == nil {
			return nil
		}
		if con, ok := ct.Annotations.Get("encoding"); ok {
			h.encoding = con.Args[0].(string)
		}
		h.lenBound = consolidateLength(ct.Annotations)
		return nil
	}
	return h
}

func (h *bytesHandler) decode(s string) ([]byte, error) {
	switch h.encoding {
	case EncodingBase64URL:
		return base64.URLEncoding.DecodeString(s)
	case EncodingBase32:
		return base32.StdEncoding.DecodeString(s)
	case EncodingBase32Hex:
		return base32.HexEncoding.DecodeString(s)
	case EncodingBase16:
		return decodeBase16(s)
	default:
		return base64.StdEncoding.DecodeString(s)
	}
}

func (h *bytesHandler) encode(b []byte) string {
	switch h.encoding {
	case EncodingBase64URL:
		return base64.URLEncoding.EncodeToString(b)
	case EncodingBase32:
		return base32.StdEncoding.EncodeToString(b)
	case EncodingBase32Hex:
		return base32.HexEncoding.EncodeToString(b)
	case EncodingBase16:
		return encodeBase16(b)
	default:
		return base64.StdEncoding.EncodeToString(b)
	}
}

func decodeBase16(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrMalformedPointer
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return nil, ErrMalformedPointer
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

const hexDigits = "0123456789abcdef"

func encodeBase16(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}

func (h *bytesHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	switch v := value.(type) {
	case []byte:
		return h.finish(v, ptr, cfg)
	case string:
		if cfg.EncodingToJSON() {
			return v, nil
		}
		decoded, err := h.decode(v)
		if err != nil {
			return value, []*Issue{NewDecodingIssue(ptr, h.encoding, err)}
		}
		return h.finish(decoded, ptr, cfg)
	default:
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "bytes", value)}
		}
		return value, nil
	}
}

func (h *bytesHandler) finish(b []byte, ptr *Pointer, cfg *Config) (any, []*Issue) {
	var issues []*Issue
	if cfg.Validate {
		if issue := h.lenBound.check(ptr, ratFromInt(len(b)), b); issue != nil {
			issues = append(issues, issue)
		}
	}
	if cfg.Convert && cfg.EncodingToJSON() {
		return h.encode(b), issues
	}
	return b, issues
}
