package marshal

import "github.com/wasmctl/wasmctl/pkg/wasmtype"

// Demarshal converts a typed Value back to a plain JSON-encodable value
// (D in the design notes). Demarshal is total: every Value has a defined
// JSON rendering. Note the documented asymmetry — D(M(json)) round-trips
// for primitives/lists/records/tuples/enums/flags/options, but not for
// variants and results: the {variant,value} and {result,value} wire shapes
// this emits differ from the marshal input shapes and are not themselves
// valid re-marshal input, so M(D(value)) fails for them too.
func Demarshal(v wasmtype.Value) interface{} {
	switch v.Kind {
	case wasmtype.Bool:
		return v.Bool
	case wasmtype.S8, wasmtype.S16, wasmtype.S32, wasmtype.S64:
		return v.Int
	case wasmtype.U8, wasmtype.U16, wasmtype.U32, wasmtype.U64:
		return v.Uint
	case wasmtype.F32:
		f := float64(v.F32)
		if !finite(f) {
			return 0
		}
		return f
	case wasmtype.F64:
		if !finite(v.F64) {
			return 0
		}
		return v.F64
	case wasmtype.Char, wasmtype.String:
		return v.Str
	case wasmtype.List, wasmtype.Tuple:
		out := make([]interface{}, 0, len(v.List))
		for _, el := range v.List {
			out = append(out, Demarshal(el))
		}
		return out
	case wasmtype.Record:
		obj := make(map[string]interface{}, len(v.Record))
		for i, name := range v.RecordFields {
			obj[name] = Demarshal(v.Record[i])
		}
		return obj
	case wasmtype.Variant:
		var payload interface{}
		if v.VariantPayload != nil {
			payload = Demarshal(*v.VariantPayload)
		}
		return map[string]interface{}{"variant": v.VariantCase, "value": payload}
	case wasmtype.Enum:
		return v.EnumCase
	case wasmtype.Option:
		if v.OptionSome == nil {
			return nil
		}
		return Demarshal(*v.OptionSome)
	case wasmtype.Result:
		if v.ResultHasOk {
			var payload interface{}
			if v.ResultOk != nil {
				payload = Demarshal(*v.ResultOk)
			}
			return map[string]interface{}{"result": "ok", "value": payload}
		}
		var payload interface{}
		if v.ResultErr != nil {
			payload = Demarshal(*v.ResultErr)
		}
		return map[string]interface{}{"result": "error", "value": payload}
	case wasmtype.Flags:
		out := make([]interface{}, 0, len(v.Flags))
		for _, f := range v.Flags {
			out = append(out, f)
		}
		return out
	case wasmtype.Own, wasmtype.Borrow:
		return "[Resource]"
	case wasmtype.Future:
		return "[Future]"
	case wasmtype.Stream:
		return "[Stream]"
	case wasmtype.ErrorContext:
		return "[ErrorContext]"
	default:
		return nil
	}
}

func finite(f float64) bool {
	return f == f && f-f == 0
}

// AggregateResults implements the §4.3 aggregation rule for a function's
// return values: zero results become a descriptive success string, one
// result demarshals directly, and two or more become a JSON array in
// declared order.
func AggregateResults(results []wasmtype.Value) interface{} {
	switch len(results) {
	case 0:
		return "Successfully executed (no return value)"
	case 1:
		return Demarshal(results[0])
	default:
		out := make([]interface{}, 0, len(results))
		for _, r := range results {
			out = append(out, Demarshal(r))
		}
		return out
	}
}
