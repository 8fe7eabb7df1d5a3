// Package wasmerr provides the structured error taxonomy shared by every
// component of the bridge.
package wasmerr

import "fmt"

// Code identifies the kind of failure at the Executor boundary.
type Code string

const (
	CodeComponentNotFound Code = "COMPONENT_NOT_FOUND"
	CodeInterfaceNotFound Code = "INTERFACE_NOT_FOUND"
	CodeFunctionNotFound  Code = "FUNCTION_NOT_FOUND"
	CodeInvalidArguments  Code = "INVALID_ARGUMENTS"
	CodeExecution         Code = "EXECUTION_ERROR"
	CodeIO                Code = "IO_ERROR"
	CodeJSON              Code = "JSON_ERROR"
	CodeMCP               Code = "MCP_ERROR"
	CodeComponent         Code = "COMPONENT_ERROR"
)

// Error is the structured error type every package returns at its public
// boundary.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]interface{})}
}

// Wrap wraps an existing error with additional context.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Details: make(map[string]interface{})}
}

// WithDetail attaches a single detail to the error and returns it for
// chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a batch of details into the error.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// Is reports whether err is a *Error carrying the given code.
func Is(err error, code Code) bool {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
	} else {
		return false
	}
	return e.Code == code
}

// ComponentNotFound builds the error for an unknown component name.
func ComponentNotFound(name string) *Error {
	return New(CodeComponentNotFound, fmt.Sprintf("component %q not found", name)).WithDetail("component", name)
}

// InterfaceNotFound builds the error for a missing interface path.
func InterfaceNotFound(path string) *Error {
	return New(CodeInterfaceNotFound, fmt.Sprintf("interface %q not found", path)).WithDetail("interface", path)
}

// FunctionNotFound builds the error for a missing function key.
func FunctionNotFound(name string) *Error {
	return New(CodeFunctionNotFound, fmt.Sprintf("function %q not found", name)).WithDetail("function", name)
}

// InvalidArguments builds an InvalidArguments error with the given detail
// message.
func InvalidArguments(detail string) *Error {
	return New(CodeInvalidArguments, detail)
}

// Execution builds an Execution error wrapping a host runtime failure.
func Execution(detail string, cause error) *Error {
	return Wrap(CodeExecution, detail, cause)
}
