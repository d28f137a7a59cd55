package jsonproto

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

// IssueKind enumerates the closed set of ways a value can fail to satisfy
// a handler. Every Issue carries exactly one kind, and its kind-specific
// payload fields are populated accordingly; unrelated fields stay zero.
type IssueKind string

const (
	IssueSerialize            IssueKind = "serialize"
	IssueDeserialize          IssueKind = "deserialize"
	IssueJSONType             IssueKind = "json_type"
	IssueStructType           IssueKind = "struct_type"
	IssueFormat               IssueKind = "format"
	IssueDecoding             IssueKind = "decoding"
	IssueEncoding             IssueKind = "encoding"
	IssuePattern              IssueKind = "pattern"
	IssueLength               IssueKind = "length"
	IssueNumber               IssueKind = "number"
	IssueExtraField           IssueKind = "extra_field"
	IssueMissingField         IssueKind = "missing_field"
	IssueDependent            IssueKind = "dependent"
	IssueDisjoint             IssueKind = "disjoint"
	IssueMissingDiscriminator IssueKind = "missing_discriminator"
	IssueInvalidDiscriminator IssueKind = "invalid_discriminator"
	IssueEnumOption           IssueKind = "enum_option"
	IssueConstant             IssueKind = "constant"
)

// Issue is one concrete failure located at a Pointer within the value tree
// being processed.
type Issue struct {
	Kind    IssueKind
	Pointer *Pointer

	Message string

	Expected   any
	Actual     any
	Format     string
	Encoding   string
	Pattern    string
	Comparator string
	Limit      any
	Name       string
	Group      []string
	Given      []string
	Missing    []string
	Options    []any
}

func (i *Issue) Error() string {
	if i.Message != "" {
		return fmt.Sprintf("%s: %s", i.Pointer, i.Message)
	}
	return fmt.Sprintf("%s: %s issue", i.Pointer, i.Kind)
}

// Localize renders the issue's message through a locale bundle, falling
// back to Error() when no translation is available.
func (i *Issue) Localize(loc *i18n.Localizer) string {
	if loc == nil {
		return i.Error()
	}
	msg := loc.Get("issue."+string(i.Kind), i18n.Vars(map[string]any{
		"expected":   i.Expected,
		"actual":     i.Actual,
		"format":     i.Format,
		"encoding":   i.Encoding,
		"pattern":    i.Pattern,
		"comparator": i.Comparator,
		"limit":      i.Limit,
		"name":       i.Name,
		"group":      strings.Join(i.Group, ", "),
		"given":      strings.Join(i.Given, ", "),
		"missing":    strings.Join(i.Missing, ", "),
	}))
	if msg == "" {
		return i.Error()
	}
	return fmt.Sprintf("%s: %s", i.Pointer, msg)
}

func NewJSONTypeIssue(p *Pointer, expected, actual any) *Issue {
	return &Issue{Kind: IssueJSONType, Pointer: p, Expected: expected, Actual: actual,
		Message: fmt.Sprintf("expected json type %v, got %v", expected, actual)}
}

func NewStructTypeIssue(p *Pointer, expected, actual any) *Issue {
	return &Issue{Kind: IssueStructType, Pointer: p, Expected: expected, Actual: actual,
		Message: fmt.Sprintf("expected struct type %v, got %v", expected, actual)}
}

func NewFormatIssue(p *Pointer, format string, actual any) *Issue {
	return &Issue{Kind: IssueFormat, Pointer: p, Format: format, Actual: actual,
		Message: fmt.Sprintf("value does not match format %q", format)}
}

func NewDecodingIssue(p *Pointer, encoding string, cause error) *Issue {
	msg := fmt.Sprintf("could not decode %s value", encoding)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Issue{Kind: IssueDecoding, Pointer: p, Encoding: encoding, Message: msg}
}

func NewEncodingIssue(p *Pointer, encoding string, cause error) *Issue {
	msg := fmt.Sprintf("could not encode %s value", encoding)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Issue{Kind: IssueEncoding, Pointer: p, Encoding: encoding, Message: msg}
}

func NewPatternIssue(p *Pointer, pattern string, actual any) *Issue {
	return &Issue{Kind: IssuePattern, Pointer: p, Pattern: pattern, Actual: actual,
		Message: fmt.Sprintf("value does not match pattern %q", pattern)}
}

func NewLengthIssue(p *Pointer, comparator string, limit any, actual any) *Issue {
	return &Issue{Kind: IssueLength, Pointer: p, Comparator: comparator, Limit: limit, Actual: actual,
		Message: fmt.Sprintf("length must be %s %v", comparator, limit)}
}

func NewNumberIssue(p *Pointer, comparator string, limit any, actual any) *Issue {
	return &Issue{Kind: IssueNumber, Pointer: p, Comparator: comparator, Limit: limit, Actual: actual,
		Message: fmt.Sprintf("value must be %s %v", comparator, limit)}
}

func NewExtraFieldIssue(p *Pointer, name string) *Issue {
	return &Issue{Kind: IssueExtraField, Pointer: p, Name: name,
		Message: fmt.Sprintf("unexpected field %q", name)}
}

func NewMissingFieldIssue(p *Pointer, name string) *Issue {
	return &Issue{Kind: IssueMissingField, Pointer: p, Name: name,
		Message: fmt.Sprintf("missing required field %q", name)}
}

func NewDependentIssue(p *Pointer, group []string, given []string) *Issue {
	var missing []string
	for _, name := range group {
		found := false
		for _, g := range given {
			found = found || g == name
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return &Issue{Kind: IssueDependent, Pointer: p, Group: group, Given: given, Missing: missing,
		Message: fmt.Sprintf("fields %v require the rest of group %v", given, group)}
}

func NewDisjointIssue(p *Pointer, group []string, given []string) *Issue {
	return &Issue{Kind: IssueDisjoint, Pointer: p, Group: group, Given: given,
		Message: fmt.Sprintf("fields %v are mutually exclusive within group %v", given, group)}
}

func NewMissingDiscriminatorIssue(p *Pointer, name string) *Issue {
	return &Issue{Kind: IssueMissingDiscriminator, Pointer: p, Name: name,
		Message: fmt.Sprintf("missing discriminator field %q", name)}
}

func NewInvalidDiscriminatorIssue(p *Pointer, name string, actual any, options []any) *Issue {
	return &Issue{Kind: IssueInvalidDiscriminator, Pointer: p, Name: name, Actual: actual, Options: options,
		Message: fmt.Sprintf("discriminator %q value %v is not one of %v", name, actual, options)}
}

func NewEnumOptionIssue(p *Pointer, actual any, options []any) *Issue {
	return &Issue{Kind: IssueEnumOption, Pointer: p, Actual: actual, Options: options,
		Message: fmt.Sprintf("value %v is not one of %v", actual, options)}
}

func NewConstantIssue(p *Pointer, expected, actual any) *Issue {
	return &Issue{Kind: IssueConstant, Pointer: p, Expected: expected, Actual: actual,
		Message: fmt.Sprintf("value must equal constant %v", expected)}
}

// ValidationError is the composite error the codec driver surfaces at its
// boundary, collecting every Issue found during a single Execute call.
type ValidationError struct {
	Issues []*Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "jsonproto: validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Error()
	}
	return "jsonproto: validation failed:\n" + strings.Join(parts, "\n")
}

// Add appends issues to the error.
func (e *ValidationError) Add(issues ...*Issue) {
	e.Issues = append(e.Issues, issues...)
}

// Empty reports whether no issues were collected.
func (e *ValidationError) Empty() bool { return len(e.Issues) == 0 }

// AsError returns e as an error when it holds any issues, else nil. This is
// the usual way handlers/codec code turns an accumulated ValidationError
// into a function's error return.
func (e *ValidationError) AsError() error {
	if e.Empty() {
		return nil
	}
	return e
}
