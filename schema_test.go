package toolbox

import (
	"bytes"
	"maps"
	"reflect"
	"testing"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotAndRestoreCustomTypes backs up the global custom type registry and registers t.Cleanup
// to restore it. Use in tests that call RegisterType so they do not affect other tests.
// Do not run such tests with t.Parallel().
func snapshotAndRestoreCustomTypes(t *testing.T) {
	t.Helper()
	customTypesMu.Lock()
	before := make(map[reflect.Type]*jsonschema.Schema)
	maps.Copy(before, customTypes)
	customTypesMu.Unlock()
	t.Cleanup(func() {
		customTypesMu.Lock()
		customTypes = before
		customTypesMu.Unlock()
	})
}

// titledTypedNodes returns every map node in the tree that has both "title" and "type".
func titledTypedNodes(node any) []map[string]any {
	var out []map[string]any
	walkSchema(node, func(n map[string]any) {
		_, hasTitle := n["title"]
		_, hasType := n["type"]
		if hasTitle && hasType {
			out = append(out, n)
		}
	})
	return out
}

// noRefInSchemaTree returns false if any node in the tree has a "$ref" key (LLM inline requirement).
func noRefInSchemaTree(node any) bool {
	found := false
	walkSchema(node, func(n map[string]any) {
		if _, has := n["$ref"]; has {
			found = true
		}
	})
	return !found
}

func TestReflectSchema_Simple(t *testing.T) {
	type Simple struct {
		Location string `json:"location" jsonschema:"description=City name"`
		Unit     string `json:"unit,omitempty" jsonschema:"enum=C,enum=F"`
	}
	m, err := reflectSchema(reflect.TypeFor[Simple]())
	require.NoError(t, err)
	assert.Equal(t, "object", m["type"])
	assert.NotContains(t, m, "$schema")
	assert.NotContains(t, m, "$id")
	props, ok := m["properties"].(map[string]any)
	require.True(t, ok, "expected properties map")
	require.Contains(t, props, "location")
	require.Contains(t, props, "unit")
	assert.Equal(t, "City name", props["location"].(map[string]any)["description"])
	assert.Equal(t, []any{"C", "F"}, props["unit"].(map[string]any)["enum"])
	assert.Equal(t, []any{"location"}, m["required"])
}

func TestReflectSchema_FreshMapEachCall(t *testing.T) {
	type Args struct {
		X int `json:"x"`
	}
	a, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	a["mutated"] = true
	b, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	assert.NotContains(t, b, "mutated")
}

func TestReflectSchema_NoRefOrDefs(t *testing.T) {
	type Nested struct {
		A string `json:"a"`
	}
	type Root struct {
		N     Nested   `json:"n"`
		Items []Nested `json:"items"`
	}
	m, err := reflectSchema(reflect.TypeFor[Root]())
	require.NoError(t, err)
	assert.Nil(t, m["$ref"], "root schema must not contain $ref for LLM compatibility")
	assert.Nil(t, m["$defs"], "root schema must not contain $defs for LLM compatibility")
	assert.True(t, noRefInSchemaTree(m), "schema tree must not contain $ref in any node")
}

func TestPurgeTitles(t *testing.T) {
	m := map[string]any{
		"type":  "object",
		"title": "Root",
		"properties": map[string]any{
			"a": map[string]any{"type": "string", "title": "A"},
			"b": map[string]any{
				"type":  "object",
				"title": "B",
				"properties": map[string]any{
					"c": map[string]any{"type": "integer", "title": "C"},
				},
			},
			"untyped": map[string]any{"title": "kept", "description": "no type"},
		},
	}
	PurgeTitles(m)
	assert.NotContains(t, m, "title")
	props := m["properties"].(map[string]any)
	assert.NotContains(t, props["a"], "title")
	assert.NotContains(t, props["b"], "title")
	assert.NotContains(t, props["b"].(map[string]any)["properties"].(map[string]any)["c"], "title")
	assert.Equal(t, "kept", props["untyped"].(map[string]any)["title"])
	assert.Empty(t, titledTypedNodes(m))
}

func TestPurgeTitles_DescendsIntoArrays(t *testing.T) {
	m := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"v": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string", "title": "S"},
					map[string]any{"type": "integer", "title": "I"},
				},
			},
			"t": map[string]any{
				"type": "array",
				"prefixItems": []any{
					map[string]any{"type": "object", "title": "Item"},
					"scalar",
				},
			},
		},
	}
	PurgeTitles(m)
	assert.Empty(t, titledTypedNodes(m))
	anyOf := m["properties"].(map[string]any)["v"].(map[string]any)["anyOf"].([]any)
	assert.Equal(t, map[string]any{"type": "string"}, anyOf[0])
}

func TestPurgeTitles_NonMapInputs(t *testing.T) {
	assert.NotPanics(t, func() {
		PurgeTitles(nil)
		PurgeTitles("title")
		PurgeTitles([]any{1, "x", nil})
	})
}

func TestPurgeTitles_ReflectedTitle(t *testing.T) {
	type Args struct {
		Query string `json:"query" jsonschema:"title=The query"`
	}
	m, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	require.NotEmpty(t, titledTypedNodes(m), "reflector should emit the title tag")
	PurgeTitles(m)
	assert.Empty(t, titledTypedNodes(m))
}

func TestCompileSchema_Validates(t *testing.T) {
	type Args struct {
		X int `json:"x"`
	}
	m, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	v, err := compileSchema(m)
	require.NoError(t, err)
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid", `{"x": 1}`, false},
		{"wrong type", `{"x": "not a number"}`, true},
		{"missing", `{}`, true},
		{"extra", `{"x": 1, "y": 2}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := sjsonschema.UnmarshalJSON(bytes.NewReader([]byte(tt.doc)))
			require.NoError(t, err)
			err = v.Validate(inst)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func FuzzValidate(f *testing.F) {
	type Args struct {
		X int `json:"x"`
	}
	m, err := reflectSchema(reflect.TypeFor[Args]())
	if err != nil {
		f.Skip("reflectSchema failed")
	}
	v, err := compileSchema(m)
	if err != nil {
		f.Skip("compileSchema failed")
	}
	f.Add([]byte(`{"x": 1}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"x": "y"}`))
	f.Fuzz(func(_ *testing.T, data []byte) {
		inst, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return
		}
		_ = v.Validate(inst)
	})
}

func TestRegisterType_ValueType(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	type MyMoney struct{}
	RegisterType(MyMoney{}, "number", "decimal")
	type Args struct {
		Amount MyMoney `json:"amount"`
	}
	m, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	amount, ok := props["amount"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", amount["type"])
	assert.Equal(t, "decimal", amount["format"])
}

func TestRegisterType_PointerFieldUsesValueMapping(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	type MyMoney struct{}
	RegisterType(MyMoney{}, "number", "decimal")
	type Args struct {
		Amount *MyMoney `json:"amount,omitempty"`
	}
	m, err := reflectSchema(reflect.TypeFor[Args]())
	require.NoError(t, err)
	amount := m["properties"].(map[string]any)["amount"].(map[string]any)
	assert.Equal(t, "number", amount["type"])
	assert.Equal(t, "decimal", amount["format"])
}

func TestRegisterType_InvalidArgs_Panic(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	assert.Panics(t, func() { RegisterType(nil, "string", "uuid") })
	assert.Panics(t, func() { RegisterType(struct{}{}, "", "uuid") })
}

func TestStripSchemaIDs_KeepsFieldsNamedLikeKeywords(t *testing.T) {
	schema := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$id":     "https://example.com/args",
		"type":    "object",
		"properties": map[string]any{
			"id":  map[string]any{"type": "integer"},
			"$id": map[string]any{"type": "string", "$id": "nested"},
		},
		"$defs": map[string]any{
			"id": map[string]any{"type": "string", "$id": "def"},
		},
	}
	stripSchemaIDs(schema)
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$id")
	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "id")
	require.Contains(t, props, "$id")
	assert.NotContains(t, props["$id"], "$id")
	defs := schema["$defs"].(map[string]any)
	require.Contains(t, defs, "id")
	assert.NotContains(t, defs["id"], "$id")
}

func TestRecursiveType(t *testing.T) {
	type Leaf struct {
		V string `json:"v"`
	}
	type Shared struct {
		A Leaf  `json:"a"`
		B *Leaf `json:"b"`
	}
	type Hidden struct {
		Next *Hidden `json:"-"`
		N    int     `json:"n"`
	}
	type Indirect struct {
		Nodes map[string][]TreeNode `json:"nodes"`
	}
	assert.True(t, recursiveType(reflect.TypeFor[TreeNode]()))
	assert.True(t, recursiveType(reflect.TypeFor[Indirect]()))
	assert.False(t, recursiveType(reflect.TypeFor[Shared]()))
	assert.False(t, recursiveType(reflect.TypeFor[Hidden]()))
	assert.False(t, recursiveType(reflect.TypeFor[SearchArgs]()))
}

func TestRecursiveType_RegisteredTypeStopsWalk(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	RegisterType(TreeNode{}, "string", "tree")
	type Holder struct {
		Root TreeNode `json:"root"`
	}
	assert.False(t, recursiveType(reflect.TypeFor[Holder]()))
}
