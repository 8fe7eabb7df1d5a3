// Package resolve implements the Function Resolver (C6): translating a
// qualified function name into a callable handle within a live instance.
package resolve

import (
	"strings"

	"github.com/wasmctl/wasmctl/pkg/host"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

// Resolve locates a callable handle for qualifiedName within instance. If
// qualifiedName contains no dot, it is looked up as a top-level export.
// Otherwise it is split on the LAST dot into (interfacePath, localName):
// interfacePath is resolved as a top-level instance export, then localName
// within it. The resolver itself is stateless — the returned handle's
// validity is scoped to instance's lifetime.
func Resolve(instance host.Instance, qualifiedName string) (host.Func, error) {
	idx := strings.LastIndex(qualifiedName, ".")
	if idx < 0 {
		fn, err := instance.ResolveFunction(qualifiedName)
		if err != nil {
			return nil, wasmerr.FunctionNotFound(qualifiedName)
		}
		return fn, nil
	}

	interfacePath, localName := qualifiedName[:idx], qualifiedName[idx+1:]
	iface, err := instance.ResolveInstance(interfacePath)
	if err != nil {
		return nil, wasmerr.InterfaceNotFound(interfacePath)
	}
	fn, err := iface.ResolveFunction(localName)
	if err != nil {
		return nil, wasmerr.FunctionNotFound(qualifiedName)
	}
	return fn, nil
}
