// Package executor implements C7, the Executor: it owns the catalog of
// loaded components, performs named-to-positional argument mapping, and
// drives the sandbox builder, function resolver, marshaller, and
// demarshaller for each invocation.
package executor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/host"
	"github.com/wasmctl/wasmctl/pkg/marshal"
	"github.com/wasmctl/wasmctl/pkg/mcpmodel"
	"github.com/wasmctl/wasmctl/pkg/resolve"
	"github.com/wasmctl/wasmctl/pkg/sandbox"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

// SourceResolver resolves a component's configured source (local path, OCI
// reference, or git URL — exactly one set) to a local file path, fetching
// and caching as needed. It is the OCI/git resolver collaborator.
type SourceResolver interface {
	Resolve(ctx context.Context, cfg component.Config) (string, error)
}

// Executor owns the read-only-after-load component catalog and drives a
// call's Marshaller -> Sandbox Builder -> Function Resolver -> Demarshaller
// pipeline. The catalog is safe for concurrent reads; AddComponent is
// guarded against interleaving with ListTools/Call.
type Executor struct {
	mu         sync.RWMutex
	runtime    host.Runtime
	resolver   SourceResolver
	components map[string]*component.Entry
	compiled   map[string]host.Component
	debug      io.Writer
}

// New constructs an empty Executor bound to a host runtime and a source
// resolver collaborator.
func New(runtime host.Runtime, resolver SourceResolver) *Executor {
	return &Executor{
		runtime:    runtime,
		resolver:   resolver,
		components: map[string]*component.Entry{},
		compiled:   map[string]host.Component{},
	}
}

// SetDebugWriter enables per-call debug tracing (argument values, timing)
// written to w. Argument values are never logged unless this is set —
// the core does not log secrets by default.
func (e *Executor) SetDebugWriter(w io.Writer) {
	e.debug = w
}

func (e *Executor) trace(format string, args ...interface{}) {
	if e.debug == nil {
		return
	}
	fmt.Fprintf(e.debug, format+"\n", args...)
}

// AddComponent loads and catalogs a component under name, overwriting any
// existing entry of the same name. Fails with InvalidArguments if the
// configuration doesn't set exactly one of Path/OCI/Git.
func (e *Executor) AddComponent(ctx context.Context, name string, cfg component.Config) error {
	sources := 0
	for _, s := range []string{cfg.Path, cfg.OCI, cfg.Git} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return wasmerr.InvalidArguments(fmt.Sprintf("component %q must set exactly one of path, oci, or git", name)).WithDetail("component", name)
	}

	start := time.Now()
	localPath, err := e.resolver.Resolve(ctx, cfg)
	if err != nil {
		return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("failed to resolve source for component %q", name), err)
	}

	compiled, err := e.runtime.Compile(ctx, localPath)
	if err != nil {
		return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("failed to compile component %q", name), err)
	}

	exports, err := compiled.Exports(ctx)
	if err != nil {
		return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("failed to enumerate exports for component %q", name), err)
	}

	entry := component.NewEntry(name, cfg)
	component.Walk(entry, exports)

	e.mu.Lock()
	e.components[name] = entry
	e.compiled[name] = compiled
	e.mu.Unlock()

	e.trace("add_component %s resolved+compiled in %s", name, time.Since(start))
	return nil
}

// ListTools enumerates every function in every loaded component as a Tool.
func (e *Executor) ListTools() []mcpmodel.Tool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var tools []mcpmodel.Tool
	for name, entry := range e.components {
		for _, fn := range entry.StandaloneFunctions {
			tools = append(tools, buildTool(name, entry, fn))
		}
		for _, iface := range entry.Interfaces {
			for _, fn := range iface.Functions {
				tools = append(tools, buildTool(name, entry, fn))
			}
		}
	}
	return tools
}

func buildTool(componentName string, entry *component.Entry, fn *component.FunctionInfo) mcpmodel.Tool {
	return mcpmodel.Tool{
		Name:         componentName + "." + fn.QualifiedName,
		Description:  entry.Config.Description,
		InputSchema:  inputSchema(fn),
		OutputSchema: outputSchema(fn),
	}
}

// Call executes toolName ("component.function-path") with named
// arguments, following §4.7's eight ordered steps.
func (e *Executor) Call(ctx context.Context, toolName string, namedArgs map[string]interface{}) (interface{}, error) {
	callID := uuid.NewString()
	start := time.Now()

	dot := strings.Index(toolName, ".")
	if dot < 0 {
		return nil, wasmerr.InvalidArguments(fmt.Sprintf("tool name %q has no dot separating component from function", toolName))
	}
	componentName, functionKey := toolName[:dot], toolName[dot+1:]

	e.mu.RLock()
	entry, ok := e.components[componentName]
	compiled := e.compiled[componentName]
	e.mu.RUnlock()
	if !ok {
		return nil, wasmerr.ComponentNotFound(componentName)
	}

	fn, err := entry.Lookup(functionKey)
	if err != nil {
		return nil, err
	}

	positional, err := mapArguments(fn, namedArgs)
	if err != nil {
		return nil, err
	}

	e.trace("call[%s] %s: mapping %d named args: %v", callID, toolName, len(namedArgs), namedArgs)

	callArgs, resultBuf, err := marshalCall(fn, positional)
	if err != nil {
		return nil, err
	}

	caps, err := sandbox.Build(sandbox.Config{
		Cwd:     entry.Config.Cwd,
		Volumes: entry.Config.Volumes,
		Env:     entry.Config.Env,
	})
	if err != nil {
		return nil, err
	}

	instance, err := compiled.Instantiate(ctx, caps)
	if err != nil {
		return nil, wasmerr.Execution(fmt.Sprintf("failed to instantiate component %q", componentName), err)
	}
	defer instance.Close(ctx)

	handle, err := resolve.Resolve(instance, fn.QualifiedName)
	if err != nil {
		return nil, err
	}

	if err := handle.Call(ctx, callArgs, resultBuf); err != nil {
		return nil, wasmerr.Execution(fmt.Sprintf("function %q failed", toolName), err)
	}

	e.trace("call[%s] %s completed in %s", callID, toolName, time.Since(start))
	return marshal.AggregateResults(resultBuf), nil
}
