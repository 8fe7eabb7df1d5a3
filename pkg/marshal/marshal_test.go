package marshal

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/wasmctl/wasmctl/pkg/wasmerr"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

func TestMarshal_IntegerRangeBoundaries(t *testing.T) {
	u8 := &wasmtype.Type{Kind: wasmtype.U8}

	if _, err := Marshal(float64(255), u8); err != nil {
		t.Errorf("255 should fit u8: %v", err)
	}
	if _, err := Marshal(float64(256), u8); err == nil {
		t.Error("256 should overflow u8")
	} else if !wasmerr.Is(err, wasmerr.CodeInvalidArguments) {
		t.Errorf("expected InvalidArguments, got %v", err)
	}
	if _, err := Marshal(float64(-1), u8); err == nil {
		t.Error("-1 should be rejected for u8")
	}

	s8 := &wasmtype.Type{Kind: wasmtype.S8}
	if _, err := Marshal(float64(127), s8); err != nil {
		t.Errorf("127 should fit s8: %v", err)
	}
	if _, err := Marshal(float64(128), s8); err == nil {
		t.Error("128 should overflow s8")
	}
	if _, err := Marshal(float64(-128), s8); err != nil {
		t.Errorf("-128 should fit s8: %v", err)
	}
	if _, err := Marshal(float64(-129), s8); err == nil {
		t.Error("-129 should underflow s8")
	}
}

func TestMarshal_Record_MissingAndExtraFields(t *testing.T) {
	rec := &wasmtype.Type{Kind: wasmtype.Record, Fields: []wasmtype.Field{
		{Name: "x", Type: &wasmtype.Type{Kind: wasmtype.String}},
	}}
	if _, err := Marshal(map[string]interface{}{}, rec); err == nil {
		t.Error("missing field should error")
	}
	if _, err := Marshal(map[string]interface{}{"x": "a", "y": 1}, rec); err == nil {
		t.Error("extra field should error")
	}
}

// roundTrip checks the §8 invariant D(M(j)) == j at the JSON wire level,
// not at the Go value level: Demarshal renders integer kinds as Go
// int64/uint64 (what the production Call path hands a JSON encoder), while
// encoding/json always decodes a bare number as float64. Comparing through
// an actual marshal/unmarshal cycle normalizes both sides the way a real
// client would see them.
func roundTrip(t *testing.T, typ *wasmtype.Type, in interface{}) {
	t.Helper()
	v, err := Marshal(in, typ)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", in, err)
	}
	got := Demarshal(v)

	wantBytes, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal(%v) failed: %v", in, err)
	}
	gotBytes, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("json.Marshal(%v) failed: %v", got, err)
	}

	var want, normalized interface{}
	if err := json.Unmarshal(wantBytes, &want); err != nil {
		t.Fatalf("json.Unmarshal(%s) failed: %v", wantBytes, err)
	}
	if err := json.Unmarshal(gotBytes, &normalized); err != nil {
		t.Fatalf("json.Unmarshal(%s) failed: %v", gotBytes, err)
	}
	if !reflect.DeepEqual(normalized, want) {
		t.Errorf("round trip: Marshal/Demarshal(%v) = %v, want %v", in, normalized, want)
	}
}

func TestRoundTrip_Primitives(t *testing.T) {
	roundTrip(t, &wasmtype.Type{Kind: wasmtype.Bool}, true)
	roundTrip(t, &wasmtype.Type{Kind: wasmtype.String}, "hello")
	roundTrip(t, &wasmtype.Type{Kind: wasmtype.F64}, 3.5)
}

func TestRoundTrip_List(t *testing.T) {
	typ := &wasmtype.Type{Kind: wasmtype.List, Elem: &wasmtype.Type{Kind: wasmtype.S32}}
	roundTrip(t, typ, []interface{}{float64(1), float64(2), float64(3)})
}

func TestRoundTrip_Record(t *testing.T) {
	typ := &wasmtype.Type{Kind: wasmtype.Record, Fields: []wasmtype.Field{
		{Name: "x", Type: &wasmtype.Type{Kind: wasmtype.String}},
		{Name: "y", Type: &wasmtype.Type{Kind: wasmtype.U8}},
	}}
	roundTrip(t, typ, map[string]interface{}{"x": "hi", "y": float64(7)})
}

func TestRoundTrip_Option(t *testing.T) {
	typ := &wasmtype.Type{Kind: wasmtype.Option, Elem: &wasmtype.Type{Kind: wasmtype.S32}}
	roundTrip(t, typ, nil)
	roundTrip(t, typ, float64(42))
}

func TestVariant_NotRoundTrippableTheOtherWay(t *testing.T) {
	typ := &wasmtype.Type{Kind: wasmtype.Variant, Cases: []wasmtype.Case{
		{Name: "ok", Payload: &wasmtype.Type{Kind: wasmtype.S32}},
	}}
	v, err := Marshal(map[string]interface{}{"ok": float64(5)}, typ)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	demarshalled := Demarshal(v)
	// D(M(json)) != json for variants: the demarshalled wire shape is
	// {variant, value}, not the original {case: payload} input shape.
	if reflect.DeepEqual(demarshalled, map[string]interface{}{"ok": float64(5)}) {
		t.Error("variant demarshal unexpectedly matched the marshal input shape")
	}
	if _, err := Marshal(demarshalled, typ); err == nil {
		t.Error("re-marshalling the demarshalled variant form should fail")
	}
}

func TestAggregateResults(t *testing.T) {
	if got := AggregateResults(nil); got != "Successfully executed (no return value)" {
		t.Errorf("zero results = %v", got)
	}
	one := []wasmtype.Value{{Kind: wasmtype.S32, Int: 5}}
	if got := AggregateResults(one); got != int64(5) {
		t.Errorf("one result = %v, want 5", got)
	}
	two := []wasmtype.Value{{Kind: wasmtype.S32, Int: 5}, {Kind: wasmtype.String, Str: "ok"}}
	got, ok := AggregateResults(two).([]interface{})
	if !ok || len(got) != 2 {
		t.Fatalf("two results = %v, want array of 2", got)
	}
}
