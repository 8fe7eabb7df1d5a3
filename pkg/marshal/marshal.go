// Package marshal implements the bidirectional bridge between JSON and
// typed component values (C2 Value Marshaller, C3 Value Demarshaller).
package marshal

import (
	"fmt"

	"github.com/wasmctl/wasmctl/pkg/wasmerr"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

// Marshal converts a decoded JSON value (any of nil, bool, float64, string,
// []interface{}, map[string]interface{} — the shapes encoding/json produces
// into an interface{}) into a typed Value, dispatching on the target type
// rather than on the shape of json. It is total: every structural Kind has
// a defined outcome for every json shape, success or InvalidArguments.
func Marshal(json interface{}, t *wasmtype.Type) (wasmtype.Value, error) {
	if t == nil {
		return wasmtype.Value{}, wasmerr.InvalidArguments("nil target type")
	}
	switch t.Kind {
	case wasmtype.Bool:
		b, ok := json.(bool)
		if !ok {
			return wasmtype.Value{}, typeMismatch("boolean", json)
		}
		return wasmtype.Value{Kind: wasmtype.Bool, Bool: b}, nil

	case wasmtype.S8, wasmtype.S16, wasmtype.S32, wasmtype.S64:
		n, ok := asInt64(json)
		if !ok {
			return wasmtype.Value{}, typeMismatch("integer", json)
		}
		min, max := wasmtype.SignedRange(t.Kind.Width())
		if n < min || n > max {
			return wasmtype.Value{}, outOfRange(t.Kind.String(), n)
		}
		return wasmtype.Value{Kind: t.Kind, Int: n}, nil

	case wasmtype.U8, wasmtype.U16, wasmtype.U32, wasmtype.U64:
		n, ok := asInt64(json)
		if !ok || n < 0 {
			return wasmtype.Value{}, typeMismatch("unsigned integer", json)
		}
		u := uint64(n)
		if u > wasmtype.UnsignedMax(t.Kind.Width()) {
			return wasmtype.Value{}, outOfRange(t.Kind.String(), json)
		}
		return wasmtype.Value{Kind: t.Kind, Uint: u}, nil

	case wasmtype.F32:
		f, ok := asFloat64(json)
		if !ok {
			return wasmtype.Value{}, typeMismatch("number", json)
		}
		return wasmtype.Value{Kind: wasmtype.F32, F32: float32(f)}, nil

	case wasmtype.F64:
		f, ok := asFloat64(json)
		if !ok {
			return wasmtype.Value{}, typeMismatch("number", json)
		}
		return wasmtype.Value{Kind: wasmtype.F64, F64: f}, nil

	case wasmtype.Char, wasmtype.String:
		// char accepts any string length without validation: a deliberate
		// divergence the spec leaves open, not enforced here.
		s, ok := json.(string)
		if !ok {
			return wasmtype.Value{}, typeMismatch("string", json)
		}
		return wasmtype.Value{Kind: t.Kind, Str: s}, nil

	case wasmtype.List:
		arr, ok := json.([]interface{})
		if !ok {
			return wasmtype.Value{}, typeMismatch("array", json)
		}
		out := make([]wasmtype.Value, 0, len(arr))
		for _, el := range arr {
			v, err := Marshal(el, t.Elem)
			if err != nil {
				return wasmtype.Value{}, err
			}
			out = append(out, v)
		}
		return wasmtype.Value{Kind: wasmtype.List, List: out}, nil

	case wasmtype.Record:
		obj, ok := json.(map[string]interface{})
		if !ok {
			return wasmtype.Value{}, typeMismatch("object", json)
		}
		if err := checkExtraKeys(obj, t.Fields); err != nil {
			return wasmtype.Value{}, err
		}
		values := make([]wasmtype.Value, 0, len(t.Fields))
		names := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			raw, present := obj[f.Name]
			if !present {
				return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("missing field %q", f.Name)).WithDetail("field", f.Name)
			}
			v, err := Marshal(raw, f.Type)
			if err != nil {
				return wasmtype.Value{}, err
			}
			values = append(values, v)
			names = append(names, f.Name)
		}
		return wasmtype.Value{Kind: wasmtype.Record, Record: values, RecordFields: names}, nil

	case wasmtype.Tuple:
		arr, ok := json.([]interface{})
		if !ok {
			return wasmtype.Value{}, typeMismatch("array", json)
		}
		if len(arr) != len(t.Elems) {
			return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("tuple expects %d elements, got %d", len(t.Elems), len(arr)))
		}
		out := make([]wasmtype.Value, 0, len(arr))
		for i, el := range arr {
			v, err := Marshal(el, t.Elems[i])
			if err != nil {
				return wasmtype.Value{}, err
			}
			out = append(out, v)
		}
		return wasmtype.Value{Kind: wasmtype.Tuple, List: out}, nil

	case wasmtype.Variant:
		obj, ok := json.(map[string]interface{})
		if !ok || len(obj) != 1 {
			return wasmtype.Value{}, wasmerr.InvalidArguments("variant requires an object with exactly one case key")
		}
		var caseName string
		var raw interface{}
		for k, v := range obj {
			caseName, raw = k, v
		}
		var payloadType *wasmtype.Type
		found := false
		for _, c := range t.Cases {
			if c.Name == caseName {
				payloadType, found = c.Payload, true
				break
			}
		}
		if !found {
			return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("unknown variant case %q", caseName)).WithDetail("case", caseName)
		}
		if payloadType == nil {
			return wasmtype.Value{Kind: wasmtype.Variant, VariantCase: caseName}, nil
		}
		payload, err := Marshal(raw, payloadType)
		if err != nil {
			return wasmtype.Value{}, err
		}
		return wasmtype.Value{Kind: wasmtype.Variant, VariantCase: caseName, VariantPayload: &payload}, nil

	case wasmtype.Enum:
		s, ok := json.(string)
		if !ok {
			return wasmtype.Value{}, typeMismatch("string", json)
		}
		for _, c := range t.Cases {
			if c.Name == s {
				return wasmtype.Value{Kind: wasmtype.Enum, EnumCase: s}, nil
			}
		}
		return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("unknown enum case %q", s)).WithDetail("case", s)

	case wasmtype.Option:
		if json == nil {
			return wasmtype.Value{Kind: wasmtype.Option}, nil
		}
		v, err := Marshal(json, t.Elem)
		if err != nil {
			return wasmtype.Value{}, err
		}
		return wasmtype.Value{Kind: wasmtype.Option, OptionSome: &v}, nil

	case wasmtype.Result:
		obj, ok := json.(map[string]interface{})
		if !ok {
			return wasmtype.Value{}, typeMismatch("object with Ok or Err key", json)
		}
		okRaw, hasOk := obj["Ok"]
		errRaw, hasErr := obj["Err"]
		if hasOk == hasErr {
			return wasmtype.Value{}, wasmerr.InvalidArguments("result requires exactly one of Ok or Err")
		}
		if hasOk {
			if t.Ok == nil {
				return wasmtype.Value{Kind: wasmtype.Result, ResultHasOk: true}, nil
			}
			v, err := Marshal(okRaw, t.Ok)
			if err != nil {
				return wasmtype.Value{}, err
			}
			return wasmtype.Value{Kind: wasmtype.Result, ResultOk: &v, ResultHasOk: true}, nil
		}
		if t.Err == nil {
			return wasmtype.Value{Kind: wasmtype.Result, ResultHasErr: true}, nil
		}
		v, err := Marshal(errRaw, t.Err)
		if err != nil {
			return wasmtype.Value{}, err
		}
		return wasmtype.Value{Kind: wasmtype.Result, ResultErr: &v, ResultHasErr: true}, nil

	case wasmtype.Flags:
		arr, ok := json.([]interface{})
		if !ok {
			return wasmtype.Value{}, typeMismatch("array of strings", json)
		}
		seen := make(map[string]bool, len(arr))
		names := make([]string, 0, len(arr))
		for _, el := range arr {
			s, ok := el.(string)
			if !ok {
				return wasmtype.Value{}, typeMismatch("string", el)
			}
			if !containsName(t.FlagNames, s) {
				return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("unknown flag %q", s)).WithDetail("flag", s)
			}
			if seen[s] {
				return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("duplicate flag %q", s)).WithDetail("flag", s)
			}
			seen[s] = true
			names = append(names, s)
		}
		return wasmtype.Value{Kind: wasmtype.Flags, Flags: names}, nil

	case wasmtype.Own, wasmtype.Borrow, wasmtype.Future, wasmtype.Stream, wasmtype.ErrorContext:
		return wasmtype.Value{Kind: t.Kind, Str: renderOpaque(json)}, nil

	default:
		return wasmtype.Value{}, wasmerr.InvalidArguments(fmt.Sprintf("unsupported type kind %q", t.Kind))
	}
}

func checkExtraKeys(obj map[string]interface{}, fields []wasmtype.Field) error {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f.Name] = true
	}
	for k := range obj {
		if !declared[k] {
			return wasmerr.InvalidArguments(fmt.Sprintf("unexpected field %q", k)).WithDetail("field", k)
		}
	}
	return nil
}

func containsName(names []string, s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}

func asInt64(json interface{}) (int64, bool) {
	switch v := json.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func asFloat64(json interface{}) (float64, bool) {
	switch v := json.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func renderOpaque(json interface{}) string {
	return fmt.Sprintf("%v", json)
}

func typeMismatch(expected string, got interface{}) *wasmerr.Error {
	return wasmerr.InvalidArguments(fmt.Sprintf("expected %s, got %T", expected, got)).
		WithDetail("expected", expected)
}

func outOfRange(kind string, value interface{}) *wasmerr.Error {
	return wasmerr.InvalidArguments(fmt.Sprintf("value %v out of range for %s", value, kind)).
		WithDetail("kind", kind).WithDetail("value", value)
}
