// Package testutil provides test helpers for toolbox (e.g. MockToolSet).
package testutil

import (
	"context"

	"github.com/skosovsky/toolbox"
)

// EchoArgs is the parameter model of the Echo tool.
type EchoArgs struct {
	Text string `json:"text" jsonschema:"description=Text to echo back"`
}

// Echo returns a tool named name that returns its text argument unchanged.
func Echo(name string) toolbox.Func {
	return toolbox.Define(name, func(_ context.Context, a EchoArgs) (string, error) {
		return a.Text, nil
	}, toolbox.WithDoc("Echo the given text."))
}

// MockToolSet is a configurable ToolSet for tests.
type MockToolSet struct {
	Funcs []toolbox.Func
}

// Tools returns Funcs, or a single Echo tool when Funcs is empty.
func (m *MockToolSet) Tools() []toolbox.Func {
	if len(m.Funcs) > 0 {
		return m.Funcs
	}
	return []toolbox.Func{Echo("echo")}
}

// Ensure MockToolSet implements ToolSet.
var _ toolbox.ToolSet = (*MockToolSet)(nil)
