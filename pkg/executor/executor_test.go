package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/host"
	"github.com/wasmctl/wasmctl/pkg/sandbox"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

// fakeAddFunc implements host.Func for an add(a: s32, b: s32) -> s32 export.
type fakeAddFunc struct{}

func (fakeAddFunc) Call(ctx context.Context, args []wasmtype.Value, results []wasmtype.Value) error {
	results[0] = wasmtype.Value{Kind: wasmtype.S32, Int: args[0].Int + args[1].Int}
	return nil
}

type fakeInstance struct {
	functions map[string]host.Func
	nested    map[string]*fakeInstance
}

func (f *fakeInstance) ResolveInstance(name string) (host.Instance, error) {
	if n, ok := f.nested[name]; ok {
		return n, nil
	}
	return nil, wasmerr.InterfaceNotFound(name)
}

func (f *fakeInstance) ResolveFunction(name string) (host.Func, error) {
	if fn, ok := f.functions[name]; ok {
		return fn, nil
	}
	return nil, wasmerr.FunctionNotFound(name)
}

func (f *fakeInstance) Close(ctx context.Context) error { return nil }

type fakeComponent struct {
	exports  []host.Export
	instance *fakeInstance
}

func (c *fakeComponent) Exports(ctx context.Context) ([]host.Export, error) {
	return c.exports, nil
}

func (c *fakeComponent) Instantiate(ctx context.Context, caps *sandbox.CapabilityContext) (host.Instance, error) {
	return c.instance, nil
}

type fakeRuntime struct {
	components map[string]*fakeComponent
}

func (r *fakeRuntime) Compile(ctx context.Context, path string) (host.Component, error) {
	return r.components[path], nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, cfg component.Config) (string, error) {
	return cfg.Path, nil
}

func newMathExecutor(t *testing.T) *Executor {
	t.Helper()
	addExport := host.Export{
		Name: "add",
		Kind: host.ExportFunction,
		Params: []host.ParamExport{
			{Name: "a", Type: &wasmtype.Type{Kind: wasmtype.S32}},
			{Name: "b", Type: &wasmtype.Type{Kind: wasmtype.S32}},
		},
		Results: []*wasmtype.Type{{Kind: wasmtype.S32}},
	}
	fc := &fakeComponent{
		exports: []host.Export{addExport},
		instance: &fakeInstance{
			functions: map[string]host.Func{"add": fakeAddFunc{}},
		},
	}
	rt := &fakeRuntime{components: map[string]*fakeComponent{"/math.wasm": fc}}
	ex := New(rt, fakeResolver{})
	require.NoError(t, ex.AddComponent(context.Background(), "math", component.Config{Path: "/math.wasm"}))
	return ex
}

func TestExecutor_ScalarAdd(t *testing.T) {
	ex := newMathExecutor(t)

	tools := ex.ListTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "math.add", tools[0].Name)

	result, err := ex.Call(context.Background(), "math.add", map[string]interface{}{
		"a": float64(2), "b": float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result)
}

func TestExecutor_MissingArgument(t *testing.T) {
	ex := newMathExecutor(t)
	_, err := ex.Call(context.Background(), "math.add", map[string]interface{}{"a": float64(2)})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestExecutor_ExtraArgument(t *testing.T) {
	ex := newMathExecutor(t)
	_, err := ex.Call(context.Background(), "math.add", map[string]interface{}{
		"a": float64(2), "b": float64(3), "c": float64(4),
	})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestExecutor_ToolNameWithoutDot(t *testing.T) {
	ex := newMathExecutor(t)
	_, err := ex.Call(context.Background(), "mathadd", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestExecutor_UnknownComponent(t *testing.T) {
	ex := newMathExecutor(t)
	_, err := ex.Call(context.Background(), "nope.add", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeComponentNotFound))
}

func TestExecutor_AddComponent_RequiresExactlyOneSource(t *testing.T) {
	ex := New(&fakeRuntime{components: map[string]*fakeComponent{}}, fakeResolver{})
	err := ex.AddComponent(context.Background(), "bad", component.Config{})
	require.Error(t, err)
	assert.True(t, wasmerr.Is(err, wasmerr.CodeInvalidArguments))
}

func TestExecutor_InterfaceFunction(t *testing.T) {
	handleExport := host.Export{
		Name:    "handle",
		Kind:    host.ExportFunction,
		Params:  []host.ParamExport{{Name: "req", Type: &wasmtype.Type{Kind: wasmtype.String}}},
		Results: []*wasmtype.Type{{Kind: wasmtype.String}},
	}
	ifaceExport := host.Export{
		Name:   "wasi:http/outgoing-handler",
		Kind:   host.ExportInstance,
		Nested: []host.Export{handleExport},
	}
	handleFunc := fakeHandleFunc{}
	nestedInstance := &fakeInstance{functions: map[string]host.Func{"handle": handleFunc}}
	fc := &fakeComponent{
		exports: []host.Export{ifaceExport},
		instance: &fakeInstance{
			nested: map[string]*fakeInstance{"wasi:http/outgoing-handler": nestedInstance},
		},
	}
	rt := &fakeRuntime{components: map[string]*fakeComponent{"/net.wasm": fc}}
	ex := New(rt, fakeResolver{})
	require.NoError(t, ex.AddComponent(context.Background(), "net", component.Config{Path: "/net.wasm"}))

	result, err := ex.Call(context.Background(), "net.wasi:http/outgoing-handler.handle", map[string]interface{}{"req": "ping"})
	require.NoError(t, err)
	assert.Equal(t, "ping:pong", result)
}

type fakeHandleFunc struct{}

func (fakeHandleFunc) Call(ctx context.Context, args []wasmtype.Value, results []wasmtype.Value) error {
	results[0] = wasmtype.Value{Kind: wasmtype.String, Str: args[0].Str + ":pong"}
	return nil
}
