package toolbox

import (
	"slices"
	"sync"
)

// entry is a registered tool: its manifest and its compiled parameter model.
// Entries are immutable once stored.
type entry struct {
	fn    Func
	model *model
}

// Registry holds callable tools keyed by internal function name.
// Safe for concurrent use; lookups take a read lock only.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register checks the single structured parameter invariant and stores fn under
// its internal name. An existing entry with the same name is replaced.
func (r *Registry) Register(fn Func) error {
	e, err := prepare(fn)
	if err != nil {
		return err
	}
	r.put(e)
	return nil
}

// prepare validates fn and compiles its parameter model without storing it.
func prepare(fn Func) (entry, error) {
	m, err := fn.paramModel()
	if err != nil {
		return entry{}, err
	}
	if err := m.compile(); err != nil {
		return entry{}, err
	}
	return entry{fn: fn, model: m}, nil
}

func (r *Registry) put(entries ...entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.entries[e.fn.name] = e
	}
}

func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Has reports whether a tool with the given internal name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Names returns the internal names of all registered tools, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
