package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skosovsky/toolbox"
)

// NewTestToolBox returns a ToolBox with panic recovery enabled and funcs
// registered as one tool set, failing the test on any registration error.
func NewTestToolBox(t testing.TB, funcs ...toolbox.Func) *toolbox.ToolBox {
	t.Helper()
	box, err := toolbox.FromToolSet(&MockToolSet{Funcs: funcs},
		toolbox.WithMiddleware(toolbox.WithRecovery()),
	)
	require.NoError(t, err)
	return box
}
