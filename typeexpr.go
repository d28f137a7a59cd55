package jsonproto

import "reflect"

// Origin names a canonical type family. Handlers and the registry key off
// Origin, not off raw Go reflect.Type, so Go's int/int32/int64 (say) all
// reduce to the same OriginInt family; the integer width is not recorded.
type Origin string

const (
	OriginBool      Origin = "bool"
	OriginNull      Origin = "null"
	OriginInt       Origin = "int"
	OriginFloat     Origin = "float"
	OriginDecimal   Origin = "decimal"
	OriginString    Origin = "string"
	OriginBytes     Origin = "bytes"
	OriginSequence  Origin = "sequence"
	OriginTuple     Origin = "tuple"
	OriginMapping   Origin = "mapping"
	OriginUnion     Origin = "union"
	OriginLiteral   Origin = "literal"
	OriginClassVar  Origin = "classvar"
	OriginFinal     Origin = "final"
	OriginEnum      Origin = "enum"
	OriginRecord    Origin = "record"
	OriginAny       Origin = "any"
	OriginForwardRef Origin = "forward_ref"
	OriginAnnotated Origin = "annotated"
)

// TypeExpr is a declarative type-hint AST node. Instead of reflecting over
// arbitrary Go type parameters (Go has none of Python's runtime generic
// introspection), schemas declare their shape explicitly with these
// constructors, which the resolver then reduces to CanonicalType triples.
type TypeExpr struct {
	Origin      Origin
	Params      []TypeExpr
	Annotations []*Constraint
	Literals    []any
	Record      *RecordType
	EnumType    reflect.Type
	EnumValues  []any
	Name        string // for ForwardRef
}

func Bool() TypeExpr    { return TypeExpr{Origin: OriginBool} }
func Null() TypeExpr    { return TypeExpr{Origin: OriginNull} }
func Int() TypeExpr      { return TypeExpr{Origin: OriginInt} }
func Float() TypeExpr    { return TypeExpr{Origin: OriginFloat} }
func Decimal() TypeExpr  { return TypeExpr{Origin: OriginDecimal} }
func Str() TypeExpr      { return TypeExpr{Origin: OriginString} }
func Bytes() TypeExpr    { return TypeExpr{Origin: OriginBytes} }
func Any() TypeExpr      { return TypeExpr{Origin: OriginAny} }

func Seq(elem TypeExpr) TypeExpr { return TypeExpr{Origin: OriginSequence, Params: []TypeExpr{elem}} }
func Tuple(elems ...TypeExpr) TypeExpr { return TypeExpr{Origin: OriginTuple, Params: elems} }
func Mapping(key, value TypeExpr) TypeExpr {
	return TypeExpr{Origin: OriginMapping, Params: []TypeExpr{key, value}}
}
func Union(arms ...TypeExpr) TypeExpr { return TypeExpr{Origin: OriginUnion, Params: arms} }
func Opt(inner TypeExpr) TypeExpr     { return Union(inner, Null()) }
func Literal(values ...any) TypeExpr  { return TypeExpr{Origin: OriginLiteral, Literals: values} }
func ClassVar(inner TypeExpr) TypeExpr { return TypeExpr{Origin: OriginClassVar, Params: []TypeExpr{inner}} }
func Final(inner TypeExpr) TypeExpr    { return TypeExpr{Origin: OriginFinal, Params: []TypeExpr{inner}} }
func RecordOf(rt *RecordType) TypeExpr { return TypeExpr{Origin: OriginRecord, Record: rt} }
func ForwardRef(name string) TypeExpr  { return TypeExpr{Origin: OriginForwardRef, Name: name} }

func EnumOf(t reflect.Type, values ...any) TypeExpr {
	return TypeExpr{Origin: OriginEnum, EnumType: t, EnumValues: values}
}

// Annotated attaches constraints onto a type expression, exactly as
// spec.md's Annotated(T, [C...]) wraps metadata around a base type.
func Annotated(inner TypeExpr, constraints ...*Constraint) TypeExpr {
	return TypeExpr{Origin: OriginAnnotated, Params: []TypeExpr{inner}, Annotations: constraints}
}
