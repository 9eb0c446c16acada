package toolbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ToolSet is implemented by objects that expose a group of tools.
type ToolSet interface {
	Tools() []Func
}

// ToolBox registers tools, keeps their descriptors for the LLM request and
// dispatches tool calls back to them. Registration is expected to finish before
// dispatch starts; Process never mutates the ToolBox and is safe for concurrent use.
type ToolBox struct {
	opts      options
	names     *NameTable
	generator *SchemaGenerator
	registry  *Registry

	mu    sync.RWMutex
	tools []ToolItem
	sets  []ToolSet
}

// New creates an empty ToolBox.
func New(opts ...Option) *ToolBox {
	o := buildOptions(opts)
	names := NewNameTable(o.mappings...)
	return &ToolBox{
		opts:      o,
		names:     names,
		generator: newSchemaGenerator(o, names),
		registry:  NewRegistry(),
	}
}

// FromToolSet creates a ToolBox and registers every tool of set.
func FromToolSet(set ToolSet, opts ...Option) (*ToolBox, error) {
	b := New(opts...)
	if err := b.RegisterToolSet(set); err != nil {
		return nil, err
	}
	return b, nil
}

// Generator returns the SchemaGenerator sharing this ToolBox's name table and strict mode.
func (b *ToolBox) Generator() *SchemaGenerator { return b.generator }

// Registry returns the underlying tool registry.
func (b *ToolBox) Registry() *Registry { return b.registry }

// RegisterTool makes fn callable. It does not add a descriptor; use
// RegisterToolSet or Generator().GenerateTools for that.
func (b *ToolBox) RegisterTool(fn Func) error {
	if err := b.registry.Register(fn); err != nil {
		return err
	}
	b.opts.logger.Debug("tool registered", "func", fn.name, "tool", b.names.ToSchema(fn.name))
	return nil
}

// RegisterToolSet registers every tool of set, appends their tool items to Tools
// and retains set. Nothing is stored when any tool fails its checks.
func (b *ToolBox) RegisterToolSet(set ToolSet) error {
	fns := set.Tools()
	items, err := b.generator.GenerateTools(fns...)
	if err != nil {
		return err
	}
	entries := make([]entry, 0, len(fns))
	for _, fn := range fns {
		e, err := prepare(fn)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	b.registry.put(entries...)

	b.mu.Lock()
	b.tools = append(b.tools, items...)
	b.sets = append(b.sets, set)
	b.mu.Unlock()

	b.opts.logger.Debug("tool set registered", "set", fmt.Sprintf("%T", set), "tools", len(items))
	return nil
}

// SchemaNameToFunc resolves an external tool name to an internal function name.
func (b *ToolBox) SchemaNameToFunc(schemaName string) string { return b.names.ToFunc(schemaName) }

// Tools returns the tool items collected by RegisterToolSet, in registration order.
func (b *ToolBox) Tools() []ToolItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]ToolItem(nil), b.tools...)
}

// Functions returns the bare descriptors of Tools.
func (b *ToolBox) Functions() []Descriptor {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Descriptor, 0, len(b.tools))
	for _, t := range b.tools {
		out = append(out, t.Function)
	}
	return out
}

// ToolSets returns the tool sets registered so far.
func (b *ToolBox) ToolSets() []ToolSet {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]ToolSet(nil), b.sets...)
}

// Process parses call.Arguments as a JSON object and dispatches the call (see
// ProcessArgs). Empty arguments are treated as {}. Malformed JSON is a
// ValidationError. Numbers are kept as json.Number so large integers reach the
// handler exactly.
func (b *ToolBox) Process(ctx context.Context, call ToolCall) (ToolResult, error) {
	args, err := decodeArguments(call.Arguments)
	if err != nil {
		return ToolResult{ToolName: call.Name}, newValidationError(call.Name, err)
	}
	return b.ProcessArgs(ctx, call.Name, args)
}

var errTrailingData = errors.New("unexpected data after arguments object")

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return args, nil
}

// ProcessArgs dispatches an already parsed call.
//
// An external name that does not resolve to a registered tool is reported in
// ToolResult.Error with a nil error, so an agent loop can carry on. Arguments
// that do not fit the parameter model fail with ValidationError, and a handler
// failure with CallError; both are returned, not folded into the result.
func (b *ToolBox) ProcessArgs(ctx context.Context, toolName string, args map[string]any) (ToolResult, error) {
	res := ToolResult{ToolName: toolName, ToolArgs: args}
	funcName := b.SchemaNameToFunc(toolName)
	e, ok := b.registry.lookup(funcName)
	if !ok {
		b.opts.logger.Warn("unknown tool", "tool", toolName)
		res.Error = "Unknown tool name: " + toolName
		return res, nil
	}

	params, err := e.model.construct(toolName, args)
	if err != nil {
		return res, err
	}

	invoke := e.fn.invoke
	h := chain(func(ctx context.Context, inv Invocation) (any, error) {
		return invoke(ctx, inv.Params)
	}, b.opts.middlewares)
	out, err := h(ctx, Invocation{Tool: toolName, Func: funcName, Params: params})
	if err != nil {
		var ce *CallError
		if errors.As(err, &ce) {
			return res, err
		}
		return res, &CallError{Tool: toolName, Err: err}
	}
	res.Observations = textOf(out)
	return res, nil
}
