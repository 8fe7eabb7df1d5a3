package component

import (
	"strings"

	"github.com/wasmctl/wasmctl/pkg/host"
	"github.com/wasmctl/wasmctl/pkg/schema"
)

// Walk recursively traverses a component's export tree, populating an
// Entry with every standalone function and every interface's function
// map. A function discovered directly at the root becomes a standalone
// function; one discovered transitively through an instance export is
// attached only to that instance's InterfaceInfo. Nested components are
// flattened into the parent's results. Module, type, and resource exports
// are ignored. Interfaces left with no functions are discarded.
func Walk(entry *Entry, exports []host.Export) {
	walk(entry, exports, "")
	for path, iface := range entry.Interfaces {
		if len(iface.Functions) == 0 {
			delete(entry.Interfaces, path)
		}
	}
}

func walk(entry *Entry, exports []host.Export, prefix string) {
	for _, ex := range exports {
		path := ex.Name
		if prefix != "" {
			path = prefix + "." + ex.Name
		}
		switch ex.Kind {
		case host.ExportFunction:
			fn := buildFunctionInfo(path, ex)
			if prefix == "" {
				entry.StandaloneFunctions[path] = fn
			} else {
				attachToInterface(entry, prefix, ex.Name, fn)
			}
		case host.ExportInstance:
			ensureInterface(entry, path)
			walk(entry, ex.Nested, path)
		case host.ExportComponent:
			// Nested components flatten into the parent at the same path
			// prefix; their functions and interfaces merge at top level.
			walk(entry, ex.Nested, prefix)
		default:
			// module, type, resource: ignored.
		}
	}
}

func ensureInterface(entry *Entry, path string) {
	if _, ok := entry.Interfaces[path]; ok {
		return
	}
	segments := strings.Split(path, "/")
	display := segments[len(segments)-1]
	entry.Interfaces[path] = &InterfaceInfo{
		DisplayName: display,
		FullPath:    path,
		Functions:   map[string]*FunctionInfo{},
	}
}

func attachToInterface(entry *Entry, ifacePath, localName string, fn *FunctionInfo) {
	ensureInterface(entry, ifacePath)
	entry.Interfaces[ifacePath].Functions[localName] = fn
}

func buildFunctionInfo(qualifiedName string, ex host.Export) *FunctionInfo {
	params := make([]ParameterInfo, 0, len(ex.Params))
	for i, p := range ex.Params {
		params = append(params, ParameterInfo{
			Name:     p.Name,
			Position: i,
			Type:     p.Type,
			Schema:   schema.Translate(p.Type),
		})
	}
	return &FunctionInfo{
		QualifiedName: qualifiedName,
		Params:        params,
		Results:       ex.Results,
	}
}
