// Package toolbox turns Go functions that take a single structured parameter into
// tool descriptors for LLM function-calling APIs, and dispatches the LLM's tool
// calls back to those functions after validating the arguments.
//
// # Overview
//
// Pipeline: Go function + parameter struct → Func (Define / FromFunc) →
// SchemaGenerator (reflection + schema cleanup) → Descriptor / ToolItem for the
// chat request. On the way back: ToolCall → name resolution → Registry lookup →
// validation against the same JSON Schema shown to the LLM → invocation →
// ToolResult.
//
// # Key concepts
//
//   - Single Source of Truth: the parameter struct drives both the schema sent to
//     the LLM and the validation of incoming arguments.
//   - Name aliases: NameMapping pairs let the LLM see a different name than the
//     Go function carries; unmapped names pass through unchanged.
//   - Errors as data at the edge: an unknown tool name comes back as
//     ToolResult.Error; invalid arguments for a known tool are a ValidationError.
//   - Setup mistakes (wrong arity, non-struct parameter, conflicting descriptions,
//     non-textual return) fail loudly at registration or generation time.
//
// # Example
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema:"description=Search terms"`
//	}
//	lookup := toolbox.Define("lookup", func(_ context.Context, a SearchArgs) (string, error) {
//	    return "found " + a.Query, nil
//	}, toolbox.WithDoc("Look up documents."))
//
//	box := toolbox.New(toolbox.WithNameMappings(toolbox.NameMapping{Func: "lookup", Schema: "search"}))
//	tools, err := box.Generator().GenerateTools(lookup)
//	if err != nil { ... }
//	if err := box.RegisterTool(lookup); err != nil { ... }
//	res, err := box.Process(ctx, toolbox.ToolCall{Name: "search", Arguments: []byte(`{"query":"x"}`)})
package toolbox
