package executor

import (
	"fmt"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/marshal"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

// mapArguments validates namedArgs against fn's declared parameters and
// builds a positional slice indexed by each parameter's declared position.
// Every declared parameter name must be present; no extra keys are
// tolerated.
func mapArguments(fn *component.FunctionInfo, namedArgs map[string]interface{}) ([]interface{}, error) {
	byName := make(map[string]int, len(fn.Params))
	for _, p := range fn.Params {
		byName[p.Name] = p.Position
	}

	for key := range namedArgs {
		if _, ok := byName[key]; !ok {
			return nil, wasmerr.InvalidArguments(fmt.Sprintf("unexpected argument %q", key)).WithDetail("argument", key)
		}
	}

	positional := make([]interface{}, len(fn.Params))
	for _, p := range fn.Params {
		raw, present := namedArgs[p.Name]
		if !present {
			return nil, wasmerr.InvalidArguments(fmt.Sprintf("missing required argument %q", p.Name)).WithDetail("argument", p.Name)
		}
		positional[p.Position] = raw
	}
	return positional, nil
}

// marshalCall runs the Value Marshaller over every positional argument and
// pre-sizes the results buffer to fn's declared result arity, as required
// by §4.7 step 6.
func marshalCall(fn *component.FunctionInfo, positional []interface{}) ([]wasmtype.Value, []wasmtype.Value, error) {
	args := make([]wasmtype.Value, len(fn.Params))
	for _, p := range fn.Params {
		v, err := marshal.Marshal(positional[p.Position], p.Type)
		if err != nil {
			return nil, nil, err
		}
		args[p.Position] = v
	}

	results := make([]wasmtype.Value, len(fn.Results))
	for i, rt := range fn.Results {
		results[i] = zeroValue(rt)
	}
	return args, results, nil
}

func zeroValue(t *wasmtype.Type) wasmtype.Value {
	if t == nil {
		return wasmtype.Value{}
	}
	return wasmtype.Value{Kind: t.Kind}
}
