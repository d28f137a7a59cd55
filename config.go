package jsonproto

// Shape names one of the logical forms data can be read from or written to
// during a codec Execute call.
type Shape string

const (
	ShapeStruct     Shape = "struct"
	ShapeUnstruct   Shape = "unstruct"
	ShapeJSON       Shape = "json"
	ShapeJSONStr    Shape = "jsonstr"
	ShapeJSONBytes  Shape = "jsonbytes"
	ShapeBinStream  Shape = "binstream"
	ShapeTextStream Shape = "textstream"
)

// ExtrasMode controls what a record handler does with mapping keys that
// don't correspond to a declared field.
type ExtrasMode string

const (
	ExtrasForbid    ExtrasMode = "forbid"
	ExtrasDrop      ExtrasMode = "drop"
	ExtrasRoundtrip ExtrasMode = "roundtrip"
)

// Config carries the parameters of a single codec call: which of
// validate/coerce/convert run, the source/target shapes, include/exclude
// path filters, the exclusion toggles, the extras policy, and the active
// patch set. Config values are immutable once built; With* methods return a
// modified copy rather than mutating the receiver, since a Config may be
// shared across concurrent Execute calls.
type Config struct {
	Validate bool
	Coerce   bool
	Convert  bool

	Source Shape
	Target Shape

	Include Path
	Exclude Path

	ExcludeNone    bool
	ExcludeUnset   bool
	ExcludeDefault bool

	ExtrasMode ExtrasMode

	Patches  []*Patch
	Metadata map[string]any

	Serializer Serializer
}

// NewConfig returns a Config with conservative defaults: validate on,
// coerce/convert off, struct<->json shapes, everything included, extras
// forbidden, the default JSON serializer.
func NewConfig() *Config {
	return &Config{
		Validate:   true,
		Source:     ShapeJSON,
		Target:     ShapeStruct,
		Include:    Everything,
		Exclude:    Nothing,
		ExtrasMode: ExtrasForbid,
		Serializer: JSONSerializer{},
	}
}

func (c *Config) clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) WithValidate(v bool) *Config { cp := c.clone(); cp.Validate = v; return cp }
func (c *Config) WithCoerce(v bool) *Config   { cp := c.clone(); cp.Coerce = v; return cp }
func (c *Config) WithConvert(v bool) *Config  { cp := c.clone(); cp.Convert = v; return cp }

func (c *Config) WithSource(s Shape) *Config { cp := c.clone(); cp.Source = s; return cp }
func (c *Config) WithTarget(s Shape) *Config { cp := c.clone(); cp.Target = s; return cp }

func (c *Config) WithInclude(p Path) *Config { cp := c.clone(); cp.Include = p; return cp }
func (c *Config) WithExclude(p Path) *Config { cp := c.clone(); cp.Exclude = p; return cp }

func (c *Config) WithExcludeNone(v bool) *Config    { cp := c.clone(); cp.ExcludeNone = v; return cp }
func (c *Config) WithExcludeUnset(v bool) *Config   { cp := c.clone(); cp.ExcludeUnset = v; return cp }
func (c *Config) WithExcludeDefault(v bool) *Config { cp := c.clone(); cp.ExcludeDefault = v; return cp }

func (c *Config) WithExtrasMode(m ExtrasMode) *Config { cp := c.clone(); cp.ExtrasMode = m; return cp }

func (c *Config) WithPatches(p ...*Patch) *Config { cp := c.clone(); cp.Patches = p; return cp }

func (c *Config) WithMetadata(m map[string]any) *Config { cp := c.clone(); cp.Metadata = m; return cp }

func (c *Config) WithSerializer(s Serializer) *Config { cp := c.clone(); cp.Serializer = s; return cp }

// EncodingToJSON reports whether this call's target shape is JSON-like
// (json/jsonstr/jsonbytes/text or binary stream), meaning handlers should
// encode native representations (time.Time, []byte, uuid.UUID, ...) down
// to their JSON-safe form rather than decode toward it.
func (c *Config) EncodingToJSON() bool {
	switch c.Target {
	case ShapeJSON, ShapeJSONStr, ShapeJSONBytes, ShapeTextStream, ShapeBinStream:
		return true
	default:
		return false
	}
}

// Included reports whether p should be processed under this config's
// include/exclude filters: included and not excluded.
func (c *Config) Included(p *Pointer) bool {
	included := c.Include == nil || c.Include.Matches(p)
	excluded := c.Exclude != nil && c.Exclude.Matches(p)
	return included && !excluded
}
