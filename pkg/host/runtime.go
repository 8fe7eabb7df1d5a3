// Package host declares the external WebAssembly host runtime contract.
// It is an interface-only collaborator boundary: this repository assumes a
// runtime capable of compiling a component, enumerating its exports with
// full structural types, instantiating it with a capability context, and
// calling exported functions with dynamic typed values. No concrete
// implementation (wasmtime, wazero) ships here.
package host

import (
	"context"

	"github.com/wasmctl/wasmctl/pkg/sandbox"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

// ExportKind discriminates the kind of item found while walking a
// component's export tree.
type ExportKind int

const (
	ExportFunction ExportKind = iota
	ExportInstance
	ExportComponent
	ExportOther // module, type, resource — ignored by the Export Walker
)

// Export is one item in a component's export tree, as reported by the
// host runtime.
type Export struct {
	Name    string
	Kind    ExportKind
	Params  []ParamExport  // populated when Kind == ExportFunction
	Results []*wasmtype.Type // populated when Kind == ExportFunction
	Nested  []Export         // populated when Kind == ExportInstance or ExportComponent
}

// ParamExport is one parameter of a function export, in declaration order.
type ParamExport struct {
	Name string
	Type *wasmtype.Type
}

// Runtime compiles component binaries and reports their export trees.
type Runtime interface {
	// Compile loads and compiles a component from a local file path.
	Compile(ctx context.Context, path string) (Component, error)
}

// Component is a compiled, uninstantiated component binary.
type Component interface {
	// Exports returns the root of the component's export tree.
	Exports(ctx context.Context) ([]Export, error)

	// Instantiate creates a fresh instance bound to the given capability
	// context. Each call to Instantiate must produce an independent
	// instance; instances are never reused across calls.
	Instantiate(ctx context.Context, caps *sandbox.CapabilityContext) (Instance, error)
}

// Instance is a single live activation of a component.
type Instance interface {
	// ResolveInstance locates a nested instance export by name, for
	// interface-path resolution (C6).
	ResolveInstance(name string) (Instance, error)

	// ResolveFunction locates a function export by name within this
	// instance (either a top-level export or a nested interface's export).
	ResolveFunction(name string) (Func, error)

	// Close releases the instance's store and pre-opened handles.
	Close(ctx context.Context) error
}

// Func is a resolved, callable function handle.
type Func interface {
	// Call invokes the function asynchronously with positional arguments,
	// writing into a results slice pre-sized to the function's declared
	// result arity.
	Call(ctx context.Context, args []wasmtype.Value, results []wasmtype.Value) error
}
