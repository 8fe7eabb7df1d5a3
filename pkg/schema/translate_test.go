package schema

import (
	"reflect"
	"testing"

	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

func TestTranslate_Primitives(t *testing.T) {
	tests := []struct {
		name string
		in   *wasmtype.Type
		want interface{}
	}{
		{"bool", &wasmtype.Type{Kind: wasmtype.Bool}, Json{"type": "boolean"}},
		{"s32", &wasmtype.Type{Kind: wasmtype.S32}, Json{"type": "integer"}},
		{"u8", &wasmtype.Type{Kind: wasmtype.U8}, Json{"type": "integer"}},
		{"f64", &wasmtype.Type{Kind: wasmtype.F64}, Json{"type": "number"}},
		{"string", &wasmtype.Type{Kind: wasmtype.String}, Json{"type": "string"}},
		{"char", &wasmtype.Type{Kind: wasmtype.Char}, Json{"type": "string"}},
		{"own", &wasmtype.Type{Kind: wasmtype.Own}, Json{"type": "string"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Translate(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTranslate_Record_PreservesFieldOrder(t *testing.T) {
	rec := &wasmtype.Type{
		Kind: wasmtype.Record,
		Fields: []wasmtype.Field{
			{Name: "x", Type: &wasmtype.Type{Kind: wasmtype.String}},
			{Name: "y", Type: &wasmtype.Type{Kind: wasmtype.U8}},
		},
	}
	got := Translate(rec).(Json)
	required, ok := got["required"].([]string)
	if !ok {
		t.Fatalf("required not a []string: %v", got["required"])
	}
	if !reflect.DeepEqual(required, []string{"x", "y"}) {
		t.Errorf("required order = %v, want [x y]", required)
	}
	if got["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", got["additionalProperties"])
	}
}

func TestTranslate_Variant(t *testing.T) {
	v := &wasmtype.Type{
		Kind: wasmtype.Variant,
		Cases: []wasmtype.Case{
			{Name: "ok", Payload: &wasmtype.Type{Kind: wasmtype.S32}},
			{Name: "pending"},
		},
	}
	got := Translate(v).(Json)
	oneOf, ok := got["oneOf"].([]interface{})
	if !ok || len(oneOf) != 2 {
		t.Fatalf("oneOf malformed: %v", got["oneOf"])
	}
	withPayload := oneOf[0].(Json)
	if withPayload["required"].([]string)[0] != "ok" {
		t.Errorf("payload case required key = %v", withPayload["required"])
	}
	noPayload := oneOf[1].(Json)
	if noPayload["const"] != "pending" {
		t.Errorf("no-payload case = %v, want const pending", noPayload)
	}
}

func TestTranslate_Result_BothAbsent(t *testing.T) {
	r := &wasmtype.Type{Kind: wasmtype.Result}
	got := Translate(r).(Json)
	want := Json{"oneOf": []interface{}{Json{"type": "null"}, Json{"type": "string"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate(empty result) = %v, want %v", got, want)
	}
}

func TestTranslate_Tuple(t *testing.T) {
	tup := &wasmtype.Type{Elems: []*wasmtype.Type{
		{Kind: wasmtype.S32},
		{Kind: wasmtype.String},
	}, Kind: wasmtype.Tuple}
	got := Translate(tup).(Json)
	if got["minItems"] != 2 || got["maxItems"] != 2 {
		t.Errorf("tuple min/max items = %v/%v, want 2/2", got["minItems"], got["maxItems"])
	}
}

func TestTranslate_Flags(t *testing.T) {
	f := &wasmtype.Type{Kind: wasmtype.Flags, FlagNames: []string{"read", "write"}}
	got := Translate(f).(Json)
	if got["uniqueItems"] != true {
		t.Errorf("flags uniqueItems = %v, want true", got["uniqueItems"])
	}
}
