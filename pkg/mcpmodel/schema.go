// Package mcpmodel holds the external MCP protocol surface types the
// Executor produces — the tool-listing and tool-call payloads a transport
// collaborator serializes over the wire. The transport itself (JSON-RPC
// framing, request/response plumbing) is out of scope; only the shapes
// are modeled here.
package mcpmodel

// Tool describes one externally invokable function.
type Tool struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	InputSchema  interface{} `json:"inputSchema"`
	OutputSchema interface{} `json:"outputSchema"`
}

// ListToolsResult is the response payload for a tool-listing request.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolRequest is the request payload for invoking a tool by name.
type CallToolRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Prompt is a passthrough prompt record surfaced unchanged from
// configuration to the protocol layer.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// ServerInstructions is the fixed description handed to a transport
// collaborator's server-info response.
const ServerInstructions = "Exposes WebAssembly component exports as JSON-addressable tools. " +
	"Call list_tools to discover available tools, then call a tool by its " +
	"\"component.function\" name with a JSON object of named arguments."
