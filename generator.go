package toolbox

import (
	"strings"
)

// SchemaGenerator derives tool descriptors from Func manifests.
type SchemaGenerator struct {
	strict bool
	names  *NameTable
}

// NewSchemaGenerator creates a SchemaGenerator. Strict mode is on by default.
func NewSchemaGenerator(opts ...Option) *SchemaGenerator {
	o := buildOptions(opts)
	return newSchemaGenerator(o, NewNameTable(o.mappings...))
}

func newSchemaGenerator(o options, names *NameTable) *SchemaGenerator {
	return &SchemaGenerator{strict: o.strict, names: names}
}

// NameToSchema returns the external name for an internal function name.
func (g *SchemaGenerator) NameToSchema(funcName string) string { return g.names.ToSchema(funcName) }

// SchemaToName returns the internal function name for an external name.
func (g *SchemaGenerator) SchemaToName(schemaName string) string { return g.names.ToFunc(schemaName) }

// FunctionSchema builds the descriptor of fn. It fails with InvariantError unless
// fn takes exactly one structured parameter, and with ConflictError in strict mode
// when both fn's documentation and its parameter model carry a description.
// The return type is not checked here; see GenerateTools.
func (g *SchemaGenerator) FunctionSchema(fn Func) (Descriptor, error) {
	m, err := fn.paramModel()
	if err != nil {
		return Descriptor{}, err
	}
	schema := m.schema
	PurgeTitles(schema)

	var description string
	if d, ok := schema["description"].(string); ok {
		description = d
	}
	delete(schema, "description")
	if strings.TrimSpace(fn.doc) != "" {
		if description != "" && g.strict {
			return Descriptor{}, &ConflictError{Tool: fn.name, Model: m.typ}
		}
		if short := ShortDescription(fn.doc); short != "" {
			description = short
		}
	}

	d := Descriptor{
		Name:        g.NameToSchema(fn.name),
		Description: description,
	}
	if m.fieldCount() > 0 {
		d.Parameters = schema
	}
	return d, nil
}

// GenerateTools builds tool items ({"type": "function", "function": ...}) for a
// batch of functions. Each return type must be unspecified or textual.
func (g *SchemaGenerator) GenerateTools(fns ...Func) ([]ToolItem, error) {
	descs, err := g.GenerateFunctions(fns...)
	if err != nil {
		return nil, err
	}
	items := make([]ToolItem, 0, len(descs))
	for _, d := range descs {
		items = append(items, ToolItem{Type: ToolTypeFunction, Function: d})
	}
	return items, nil
}

// GenerateFunctions builds bare descriptors for a batch of functions. Each return
// type must be unspecified or textual.
func (g *SchemaGenerator) GenerateFunctions(fns ...Func) ([]Descriptor, error) {
	descs := make([]Descriptor, 0, len(fns))
	for _, fn := range fns {
		if err := fn.checkReturn(); err != nil {
			return nil, err
		}
		d, err := g.FunctionSchema(fn)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}
