package host

import (
	"context"
	"fmt"
)

// Unbound is a Runtime placeholder that fails every Compile call. It lets
// the CLI and Executor wiring compile and run end to end against
// configuration and catalog logic without embedding a concrete WebAssembly
// engine, which this repository treats as an external collaborator.
// Embedding applications supply a real Runtime (backed by wasmtime, wazero,
// or similar) in its place.
type Unbound struct{}

func (Unbound) Compile(ctx context.Context, path string) (Component, error) {
	return nil, fmt.Errorf("no host runtime configured: cannot compile %q without a concrete WebAssembly engine binding", path)
}
