package jsonproto

import (
	"strconv"
	"strings"
)

// tagRule is one "key" or "key=value" clause from a `jsonproto:"..."` tag.
type tagRule struct {
	name  string
	value string
	has   bool
}

// parseTag splits a struct tag into its comma-separated rules, respecting
// single/double-quoted values so a pattern rule can itself contain a comma
// (e.g. `jsonproto:"pattern='a,b'"`).
func parseTag(tag string) []tagRule {
	var rules []tagRule
	var cur strings.Builder
	inQuote := byte(0)
	flush := func() {
		part := strings.TrimSpace(cur.String())
		cur.Reset()
		if part == "" {
			return
		}
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			name := strings.TrimSpace(part[:eq])
			value := strings.TrimSpace(part[eq+1:])
			value = unquote(value)
			rules = append(rules, tagRule{name: name, value: value, has: true})
		} else {
			rules = append(rules, tagRule{name: part})
		}
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			}
			cur.WriteByte(c)
		case c == '\'' || c == '"':
			inQuote = c
			cur.WriteByte(c)
		case c == ',':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return rules
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// fieldTagInfo is what parseFieldTag makes of a field's tag rules: a
// Constraints bag plus the out-of-band metadata (alias, required, default, dependent
// group, disjoint group, kwonly, computed) the record builder needs
// separately.
type fieldTagInfo struct {
	Alias      string
	Required   bool
	Default    any
	HasDefault bool
	KWOnly     bool
	Computed   bool
	Dependent  []string
	Disjoint   []string
}

func parseFieldTag(tag string) (*Constraints, fieldTagInfo) {
	cs := NewConstraints()
	var info fieldTagInfo
	for _, r := range parseTag(tag) {
		switch r.name {
		case "alias":
			info.Alias = r.value
			cs.Add(Alias(r.value))
		case "required":
			info.Required = true
			cs.Add(Required())
		case "kwonly":
			info.KWOnly = true
		case "computed":
			info.Computed = true
		case "default":
			info.Default, info.HasDefault = r.value, true
			cs.Add(Default(r.value))
		case "deprecated":
			cs.Add(Deprecated())
		case "dependent":
			info.Dependent = append(info.Dependent, r.value)
			cs.Add(Dependent(r.value))
		case "disjoint":
			info.Disjoint = append(info.Disjoint, r.value)
			cs.Add(Disjoint(r.value))
		case "pattern":
			cs.Add(Pattern(r.value))
		case "format":
			cs.Add(Format(r.value))
		case "encoding":
			cs.Add(Encoding(r.value))
		case "discriminator":
			cs.Add(Discriminator(r.value))
		case "example":
			cs.Add(Example(r.value))
		case "length_eq":
			if n, err := strconv.Atoi(r.value); err == nil {
				cs.Add(LengthEQ(n))
			}
		case "length_ge":
			if n, err := strconv.Atoi(r.value); err == nil {
				cs.Add(LengthGE(n))
			}
		case "length_le":
			if n, err := strconv.Atoi(r.value); err == nil {
				cs.Add(LengthLE(n))
			}
		case "value_ge":
			cs.Add(ValueGE(r.value))
		case "value_le":
			cs.Add(ValueLE(r.value))
		case "value_gt":
			cs.Add(ValueGT(r.value))
		case "value_lt":
			cs.Add(ValueLT(r.value))
		case "value_eq":
			cs.Add(ValueEQ(r.value))
		case "multiple_of":
			cs.Add(MultipleOf(r.value))
		}
	}
	return cs, info
}
