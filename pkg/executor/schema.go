package executor

import (
	"fmt"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/schema"
)

func inputSchema(fn *component.FunctionInfo) interface{} {
	props := schema.Json{}
	required := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		props[p.Name] = p.Schema
		required = append(required, p.Name)
	}
	return schema.Json{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// outputSchema implements §4.7: a descriptive string schema for zero
// results, else an object keyed result_1..result_n.
func outputSchema(fn *component.FunctionInfo) interface{} {
	if len(fn.Results) == 0 {
		return schema.Json{"type": "string", "description": "Execution status message"}
	}
	props := schema.Json{}
	required := make([]string, 0, len(fn.Results))
	for i, r := range fn.Results {
		key := fmt.Sprintf("result_%d", i+1)
		props[key] = schema.Translate(r)
		required = append(required, key)
	}
	return schema.Json{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
