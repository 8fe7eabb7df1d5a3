// Package schema translates structural component types into JSON-Schema
// fragments used to advertise tool signatures (C1, the Type Schema
// Translator).
package schema

import "github.com/wasmctl/wasmctl/pkg/wasmtype"

// Json is a JSON-Schema object node, built by hand rather than through a
// reflection-based schema library since the structural grammar is closed
// and small.
type Json = map[string]interface{}

// Translate is a pure, total function from a structural type to a
// JSON-Schema value (Ψ in the design notes).
func Translate(t *wasmtype.Type) interface{} {
	if t == nil {
		return Json{"type": "null"}
	}
	switch t.Kind {
	case wasmtype.Bool:
		return Json{"type": "boolean"}
	case wasmtype.S8, wasmtype.S16, wasmtype.S32, wasmtype.S64,
		wasmtype.U8, wasmtype.U16, wasmtype.U32, wasmtype.U64:
		return Json{"type": "integer"}
	case wasmtype.F32, wasmtype.F64:
		return Json{"type": "number"}
	case wasmtype.Char, wasmtype.String:
		return Json{"type": "string"}
	case wasmtype.List:
		return Json{"type": "array", "items": Translate(t.Elem)}
	case wasmtype.Record:
		props := Json{}
		required := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			props[f.Name] = Translate(f.Type)
			required = append(required, f.Name)
		}
		return Json{
			"type":                 "object",
			"properties":           props,
			"required":             required,
			"additionalProperties": false,
		}
	case wasmtype.Tuple:
		items := make([]interface{}, 0, len(t.Elems))
		for _, e := range t.Elems {
			items = append(items, Translate(e))
		}
		return Json{
			"type":     "array",
			"items":    items,
			"minItems": len(t.Elems),
			"maxItems": len(t.Elems),
		}
	case wasmtype.Variant:
		options := make([]interface{}, 0, len(t.Cases))
		for _, c := range t.Cases {
			if c.Payload != nil {
				options = append(options, Json{
					"type":                 "object",
					"properties":           Json{c.Name: Translate(c.Payload)},
					"required":             []string{c.Name},
					"additionalProperties": false,
				})
			} else {
				options = append(options, Json{"const": c.Name})
			}
		}
		return Json{"oneOf": options}
	case wasmtype.Enum:
		names := make([]string, 0, len(t.Cases))
		for _, c := range t.Cases {
			names = append(names, c.Name)
		}
		return Json{"type": "string", "enum": names}
	case wasmtype.Option:
		return Json{"oneOf": []interface{}{Translate(t.Elem), Json{"type": "null"}}}
	case wasmtype.Result:
		var okBranch, errBranch interface{}
		if t.Ok != nil {
			okBranch = Json{
				"type":       "object",
				"properties": Json{"Ok": Translate(t.Ok)},
				"required":   []string{"Ok"},
			}
		} else {
			okBranch = Json{"type": "null"}
		}
		if t.Err != nil {
			errBranch = Json{
				"type":       "object",
				"properties": Json{"Err": Translate(t.Err)},
				"required":   []string{"Err"},
			}
		} else {
			errBranch = Json{"type": "null"}
		}
		if t.Ok == nil && t.Err == nil {
			return Json{"oneOf": []interface{}{Json{"type": "null"}, Json{"type": "string"}}}
		}
		return Json{"oneOf": []interface{}{okBranch, errBranch}}
	case wasmtype.Flags:
		return Json{
			"type": "array",
			"items": Json{
				"type": "string",
				"enum": append([]string{}, t.FlagNames...),
			},
			"uniqueItems": true,
		}
	case wasmtype.Future:
		props := Json{"pending": Json{"type": "boolean"}}
		if t.Elem != nil {
			props["value"] = Translate(t.Elem)
		}
		return Json{"type": "object", "properties": props}
	case wasmtype.Stream:
		var items interface{}
		if t.Elem != nil {
			items = Translate(t.Elem)
		} else {
			items = Json{"type": "string"}
		}
		return Json{"type": "array", "items": items}
	case wasmtype.Own, wasmtype.Borrow, wasmtype.ErrorContext:
		return Json{"type": "string"}
	default:
		return Json{"type": "string"}
	}
}
