package toolbox

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	customTypesMu sync.RWMutex
	customTypes   = make(map[reflect.Type]*jsonschema.Schema)
)

// RegisterType registers a custom Go type to be mapped to a JSON Schema type/format in generated schemas.
// emptyInstance is a value of the type to register (e.g. uuid.UUID{}, or MyMoney{}); it must not be nil.
// jsonType is the JSON Schema type (e.g. "string", "number"); it must not be empty.
// Pointer fields (*T) use the same mapping as T. Call RegisterType at startup, before registering tools.
func RegisterType(emptyInstance any, jsonType, format string) {
	if emptyInstance == nil {
		panic("toolbox: RegisterType emptyInstance must not be nil")
	}
	if jsonType == "" {
		panic("toolbox: RegisterType jsonType must not be empty")
	}
	t := reflect.TypeOf(emptyInstance)
	customTypesMu.Lock()
	defer customTypesMu.Unlock()
	customTypes[t] = &jsonschema.Schema{Type: jsonType, Format: format}
}

// mapCustomType is the Reflector.Mapper hook for types added with RegisterType.
func mapCustomType(t reflect.Type) *jsonschema.Schema {
	customTypesMu.RLock()
	defer customTypesMu.RUnlock()
	s, ok := customTypes[t]
	if !ok {
		return nil
	}
	return &jsonschema.Schema{Type: s.Type, Format: s.Format}
}

var errNilSchema = errors.New("schema reflection returned nil")

// reflectSchema produces a JSON Schema map for a struct type. Every call builds a
// fresh map, so callers may mutate the result. Definitions are inlined because
// tool-calling APIs do not resolve $ref.
func reflectSchema(t reflect.Type) (map[string]any, error) {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		Mapper:         mapCustomType,
	}
	schema := r.ReflectFromType(t)
	if schema == nil {
		return nil, errNilSchema
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil, err
	}
	stripSchemaIDs(schemaMap)
	return schemaMap, nil
}

// walkSchema recursively visits every map node in the schema tree, including map
// nodes held in arrays (items tuples, anyOf, oneOf, allOf).
func walkSchema(node any, visit func(map[string]any)) {
	switch v := node.(type) {
	case map[string]any:
		visit(v)
		for _, child := range v {
			walkSchema(child, visit)
		}
	case []any:
		for _, item := range v {
			walkSchema(item, visit)
		}
	}
}

// PurgeTitles removes "title" from every map node that also carries "type".
// It descends into map values and array elements alike, so titles inside
// anyOf/oneOf/prefixItems schemas are removed too. The check is by key only: a
// properties map declaring both "type" and "title" fields loses "title".
func PurgeTitles(node any) {
	walkSchema(node, func(n map[string]any) {
		if _, typed := n["type"]; typed {
			delete(n, "title")
		}
	})
}

// nameKeyed lists the keywords whose value maps a user-chosen name to a schema.
// Keys of these maps are field or definition names, not keywords.
var nameKeyed = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"$defs":             true,
	"definitions":       true,
}

// walkSubschemas visits schema nodes only. Unlike walkSchema it never hands the
// visitor a properties or $defs map, so a field named like a keyword is left alone.
func walkSubschemas(node any, visit func(map[string]any)) {
	switch v := node.(type) {
	case map[string]any:
		visit(v)
		for key, child := range v {
			if named, ok := child.(map[string]any); ok && nameKeyed[key] {
				for _, sub := range named {
					walkSubschemas(sub, visit)
				}
				continue
			}
			walkSubschemas(child, visit)
		}
	case []any:
		for _, item := range v {
			walkSubschemas(item, visit)
		}
	}
}

// stripSchemaIDs removes $schema and $id so the schema is self-contained.
func stripSchemaIDs(schemaMap map[string]any) {
	delete(schemaMap, "$schema")
	walkSubschemas(schemaMap, func(n map[string]any) {
		delete(n, "$id")
	})
}

var errRecursiveModel = errors.New("recursive parameter model")

// schemaProvider is the invopop hook for types that build their own schema.
type schemaProvider interface {
	JSONSchema() *jsonschema.Schema
}

var schemaProviderType = reflect.TypeFor[schemaProvider]()

// recursiveType reports whether t refers back to itself through its fields.
// Schemas are inlined, so such a type has no finite schema.
func recursiveType(t reflect.Type) bool {
	return reachesCycle(t, make(map[reflect.Type]bool), make(map[reflect.Type]bool))
}

func reachesCycle(t reflect.Type, onPath, done map[reflect.Type]bool) bool {
	for isContainer(t.Kind()) {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || done[t] || ownSchema(t) {
		return false
	}
	if onPath[t] {
		return true
	}
	onPath[t] = true
	for i := range t.NumField() {
		f := t.Field(i)
		if (!f.IsExported() && !f.Anonymous) || f.Tag.Get("json") == "-" {
			continue
		}
		if reachesCycle(f.Type, onPath, done) {
			return true
		}
	}
	delete(onPath, t)
	done[t] = true
	return false
}

func isContainer(k reflect.Kind) bool {
	return k == reflect.Pointer || k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// ownSchema reports whether the reflector stops at t instead of walking its fields.
func ownSchema(t reflect.Type) bool {
	if t.Implements(schemaProviderType) || reflect.PointerTo(t).Implements(schemaProviderType) {
		return true
	}
	customTypesMu.RLock()
	defer customTypesMu.RUnlock()
	_, ok := customTypes[t]
	return ok
}

const schemaResource = "params.json"

// compileSchema compiles a raw JSON Schema map into a validator. The map is not mutated.
func compileSchema(schemaMap map[string]any) (*sjsonschema.Schema, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	doc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaResource)
}
