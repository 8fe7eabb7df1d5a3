// Package component models a loaded WASM component's catalog: its
// configuration, its standalone functions, and its nested interfaces
// (C4 Export Walker, plus the data model of §3).
package component

import (
	"strings"

	"github.com/wasmctl/wasmctl/pkg/sandbox"
	"github.com/wasmctl/wasmctl/pkg/wasmtype"
)

// Config is a component's configuration as supplied by the configuration
// collaborator: exactly one of Path, OCI or Git must be set.
type Config struct {
	Path        string
	OCI         string
	Git         string
	Cwd         string
	Volumes     []sandbox.VolumeMount
	Env         map[string]string
	Description string
}

// ParameterInfo is one parameter of a function, created once at
// component-load time and immutable thereafter.
type ParameterInfo struct {
	Name     string
	Position int
	Type     *wasmtype.Type
	Schema   interface{}
}

// FunctionInfo is a fully catalogued exported function.
type FunctionInfo struct {
	// QualifiedName is the full dot-separated export path: for interface
	// functions, "interface-path.function"; for standalone exports, just
	// the function name (no dot).
	QualifiedName string
	Params        []ParameterInfo
	Results       []*wasmtype.Type
}

// InterfaceInfo groups the functions exported by one nested instance
// export.
type InterfaceInfo struct {
	DisplayName string
	FullPath    string
	Functions   map[string]*FunctionInfo // keyed by local (unqualified) name
}

// Entry is the full catalog for one loaded, configured component.
type Entry struct {
	Name                string
	Config              Config
	StandaloneFunctions map[string]*FunctionInfo
	Interfaces          map[string]*InterfaceInfo
}

// NewEntry creates an empty catalog entry ready to be populated by Walk.
func NewEntry(name string, cfg Config) *Entry {
	return &Entry{
		Name:                name,
		Config:              cfg,
		StandaloneFunctions: map[string]*FunctionInfo{},
		Interfaces:          map[string]*InterfaceInfo{},
	}
}

// Lookup finds a function by its qualified key, searching interfaces first
// (by splitting on the last dot) and falling back to standalone functions,
// per C7's resolution order.
func (e *Entry) Lookup(functionKey string) (*FunctionInfo, error) {
	if idx := strings.LastIndex(functionKey, "."); idx >= 0 {
		ifacePath, local := functionKey[:idx], functionKey[idx+1:]
		if iface, ok := e.Interfaces[ifacePath]; ok {
			if fn, ok := iface.Functions[local]; ok {
				return fn, nil
			}
		}
	}
	if fn, ok := e.StandaloneFunctions[functionKey]; ok {
		return fn, nil
	}
	return nil, errFunctionNotFound(functionKey)
}
