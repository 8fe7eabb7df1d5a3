package component

import "github.com/wasmctl/wasmctl/pkg/wasmerr"

func errFunctionNotFound(name string) *wasmerr.Error {
	return wasmerr.FunctionNotFound(name)
}

func errInterfaceNotFound(path string) *wasmerr.Error {
	return wasmerr.InterfaceNotFound(path)
}
