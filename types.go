package toolbox

import (
	"encoding/json"
)

// ToolTypeFunction is the only tool item type understood by tool-calling APIs.
const ToolTypeFunction = "function"

// Descriptor describes one callable to an LLM tool-calling API.
// Name is the external (schema) name. Parameters is nil when the parameter
// model declares no fields.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolItem is a Descriptor wrapped for the "tools" array of a chat request.
type ToolItem struct {
	Type     string     `json:"type"`
	Function Descriptor `json:"function"`
}

// ToolCall is a single dispatch request as produced by the LLM.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult is the outcome of dispatching a ToolCall. On a resolved call exactly
// one of Observations and Error is meaningful; consumers branch on Failed.
type ToolResult struct {
	ToolName     string         `json:"tool_name"`
	ToolArgs     map[string]any `json:"tool_args,omitempty"`
	Observations string         `json:"observations,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Failed reports whether the call could not be dispatched (e.g. unknown tool name).
func (r ToolResult) Failed() bool { return r.Error != "" }
