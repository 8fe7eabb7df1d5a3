// Package mcptransport declares the Model Context Protocol transport
// collaborator: whatever frames tool-listing and tool-call requests over a
// wire (stdio JSON-RPC, SSE, websockets) and drives a Server. Implementing
// a transport is out of scope here; this package only describes the seam
// an embedding application fills in.
package mcptransport

import (
	"context"

	"github.com/wasmctl/wasmctl/pkg/mcpmodel"
)

// Server is whatever a Transport drives to answer protocol requests. The
// Executor satisfies it directly.
type Server interface {
	ListTools() []mcpmodel.Tool
	Call(ctx context.Context, toolName string, arguments map[string]interface{}) (interface{}, error)
}

// Transport serves a Server over some wire protocol until ctx is canceled.
type Transport interface {
	Serve(ctx context.Context, server Server) error
}
