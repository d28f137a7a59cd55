package jsonproto

import (
	"reflect"
	"testing"
)

type benchPerson struct {
	Name string `jsonproto:"alias=name,required"`
	Age  int    `jsonproto:"alias=age,value_ge=0"`
	City string `jsonproto:"alias=city,default=unknown"`
}

var benchPersonType = reflect.TypeOf(benchPerson{})

func BenchmarkExecuteValidateJSONToStruct(b *testing.B) {
	rt := DeclareRecord(benchPersonType)
	hint := RecordOf(rt)
	cfg := &Config{Validate: true, Source: ShapeJSONStr, Target: ShapeStruct}
	src := `{"name":"Ada","age":30,"city":"London"}`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(hint, src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteCoerceJSONToStruct(b *testing.B) {
	rt := DeclareRecord(benchPersonType)
	hint := RecordOf(rt)
	cfg := &Config{Validate: true, Coerce: true, Source: ShapeJSONStr, Target: ShapeStruct}
	src := `{"name":"Ada","age":"30","city":"London"}`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(hint, src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteConvertStructToJSON(b *testing.B) {
	rt := DeclareRecord(benchPersonType)
	hint := RecordOf(rt)
	cfg := &Config{Validate: true, Convert: true, Target: ShapeJSONStr}
	src := benchPerson{Name: "Ada", Age: 30, City: "London"}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(hint, src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteValidateUnstructToStruct(b *testing.B) {
	rt := DeclareRecord(benchPersonType)
	hint := RecordOf(rt)
	cfg := &Config{Validate: true, Source: ShapeUnstruct, Target: ShapeStruct}
	src := map[string]any{"name": "Ada", "age": float64(30), "city": "London"}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(hint, src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteValidateStructToUnstruct(b *testing.B) {
	rt := DeclareRecord(benchPersonType)
	hint := RecordOf(rt)
	cfg := &Config{Validate: true, Source: ShapeStruct, Target: ShapeUnstruct}
	src := benchPerson{Name: "Ada", Age: 30, City: "London"}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(hint, src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteFastPathJSONBytesToJSONStr(b *testing.B) {
	cfg := &Config{Convert: true, Source: ShapeJSONBytes, Target: ShapeJSONStr}
	src := []byte(`{"name":"Ada","age":30,"city":"London"}`)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(Str(), src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
