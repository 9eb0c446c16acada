package toolbox

// NameMapping aliases an internal function name to the name exposed in schemas.
type NameMapping struct {
	Func   string `yaml:"func" json:"func"`
	Schema string `yaml:"schema" json:"schema"`
}

// NameTable is a bidirectional alias table built once from an ordered list of
// mappings. In both directions the first matching pair wins; names without a
// pair map to themselves.
type NameTable struct {
	toSchema map[string]string
	toFunc   map[string]string
}

// NewNameTable builds a NameTable. Callers should avoid ambiguous tables: a
// name that appears in several pairs resolves through the first one only.
func NewNameTable(mappings ...NameMapping) *NameTable {
	t := &NameTable{
		toSchema: make(map[string]string, len(mappings)),
		toFunc:   make(map[string]string, len(mappings)),
	}
	for _, m := range mappings {
		if _, ok := t.toSchema[m.Func]; !ok {
			t.toSchema[m.Func] = m.Schema
		}
		if _, ok := t.toFunc[m.Schema]; !ok {
			t.toFunc[m.Schema] = m.Func
		}
	}
	return t
}

// ToSchema returns the external name for an internal function name.
func (t *NameTable) ToSchema(funcName string) string {
	if t != nil {
		if s, ok := t.toSchema[funcName]; ok {
			return s
		}
	}
	return funcName
}

// ToFunc returns the internal function name for an external name.
func (t *NameTable) ToFunc(schemaName string) string {
	if t != nil {
		if f, ok := t.toFunc[schemaName]; ok {
			return f
		}
	}
	return schemaName
}
