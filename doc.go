// Package jsonproto is a schema-driven codec that moves data between JSON
// form, unstructured native form, and structured (record) form.
//
// The engine is built around four cooperating pieces: a type resolver that
// reduces type expressions to canonical triples, a registry that maps
// canonical types to handler classes, a handler hierarchy that performs the
// actual validate/coerce/convert work per type family, and a record runtime
// that adds field discovery, aliasing, unions, and dependent/disjoint rules
// on top. A pointer/path subsystem addresses locations within a value tree
// for diagnostics and include/exclude filtering.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for the format
// validator algorithms adapted in formats.go.
package jsonproto
