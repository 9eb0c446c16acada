package toolbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// model is the structured parameter model of a tool: a struct type that exports
// its own JSON Schema and can be constructed, with validation, from a field mapping.
type model struct {
	typ       reflect.Type // struct type, pointer stripped
	ptr       bool         // the tool takes *typ
	schema    map[string]any
	validator *sjsonschema.Schema
}

// newModel reflects t into a model. It returns ErrNotModel unless t is a struct or
// a pointer to a struct whose schema is an object. Self-referential structs are
// rejected before reflection. The validator is not compiled;
// see compile.
func newModel(t reflect.Type) (*model, error) {
	if t == nil {
		return nil, ErrNotModel
	}
	m := &model{typ: t}
	if t.Kind() == reflect.Pointer {
		m.typ, m.ptr = t.Elem(), true
	}
	if m.typ.Kind() != reflect.Struct {
		return nil, ErrNotModel
	}
	if recursiveType(m.typ) {
		return nil, fmt.Errorf("%w: %v: %w", ErrNotModel, m.typ, errRecursiveModel)
	}
	schema, err := reflectSchema(m.typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotModel, err)
	}
	if schema["type"] != "object" {
		return nil, ErrNotModel
	}
	m.schema = schema
	return m, nil
}

// fieldCount returns the number of properties the model declares.
func (m *model) fieldCount() int {
	props, _ := m.schema["properties"].(map[string]any)
	return len(props)
}

// compile builds the argument validator from the model schema.
func (m *model) compile() error {
	v, err := compileSchema(m.schema)
	if err != nil {
		return fmt.Errorf("compile schema for %v: %w", m.typ, err)
	}
	m.validator = v
	return nil
}

// construct validates args against the schema (Layer 1), decodes them into a new
// model value and runs Validatable (Layer 2). The result has the tool's declared
// parameter type (T or *T).
func (m *model) construct(tool string, args map[string]any) (any, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return nil, newValidationError(tool, err)
	}
	inst, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, newValidationError(tool, err)
	}
	if err := m.validator.Validate(inst); err != nil {
		return nil, newValidationError(tool, err)
	}
	pv := reflect.New(m.typ)
	if err := json.Unmarshal(data, pv.Interface()); err != nil {
		return nil, newValidationError(tool, err)
	}
	if err := validateCustom(pv.Interface()); err != nil {
		return nil, newValidationError(tool, err)
	}
	if m.ptr {
		return pv.Interface(), nil
	}
	return pv.Elem().Interface(), nil
}
