package jsonproto

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func init() {
	DefaultRegistry.RegisterOrigin(OriginString, newStringHandler)
}

type stringHandler struct {
	baseHandler
	pattern  *regexp.Regexp
	lenBound numericBounds
	format   string
}

func newStringHandler(ct *CanonicalType, _ any, _ *Registry) Handler {
	h := &stringHandler{}
	h.buildFn = func() error {
		if ct.Annotations == nil {
			return nil
		}
		if con, ok := ct.Annotations.Get("pattern"); ok {
			re, err := regexp.Compile(con.Args[0].(string))
			if err != nil {
				return fmt.Errorf("jsonproto: invalid pattern %q: %w", con.Args[0], err)
			}
			h.pattern = re
		}
		h.lenBound = consolidateLength(ct.Annotations)
		if con, ok := ct.Annotations.Get("format"); ok {
			h.format = con.Args[0].(string)
		}
		return nil
	}
	return h
}

func consolidateLength(c *Constraints) numericBounds {
	b := numericBounds{isLength: true}
	if con, ok := c.Get("length_eq"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasEQ, b.eq = true, r
		}
	}
	if con, ok := c.Get("length_ge"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasMin, b.min = true, r
		}
	}
	if con, ok := c.Get("length_le"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasMax, b.max = true, r
		}
	}
	return b
}

func (h *stringHandler) Handle(value any, ptr *Pointer, cfg *Config) (any, []*Issue) {
	s, ok := value.(string)
	if !ok && cfg.Coerce {
		s, ok = coerceString(value)
	}
	if !ok {
		if cfg.Validate {
			return value, []*Issue{NewJSONTypeIssue(ptr, "string", value)}
		}
		return value, nil
	}

	var issues []*Issue
	if cfg.Validate {
		length := new(big.Rat).SetInt64(int64(len([]rune(s))))
		if issue := h.lenBound.check(ptr, length, s); issue != nil {
			issues = append(issues, issue)
		}
		if h.pattern != nil && !h.pattern.MatchString(s) {
			issues = append(issues, NewPatternIssue(ptr, h.pattern.String(), s))
		}
		if h.format != "" {
			if validator, ok := Formats[h.format]; ok && !validator(s) {
				issues = append(issues, NewFormatIssue(ptr, h.format, s))
			}
		}
	}

	if !cfg.Convert {
		return s, issues
	}

	switch h.format {
	case "uuid":
		if cfg.EncodingToJSON() {
			return s, issues
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return s, append(issues, NewDecodingIssue(ptr, "uuid", err))
		}
		return id, issues
	case "date-time":
		if cfg.EncodingToJSON() {
			return s, issues
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return s, append(issues, NewDecodingIssue(ptr, "date-time", err))
		}
		return t, issues
	}
	return s, issues
}

func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case uuid.UUID:
		return v.String(), true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	}
	return "", false
}
