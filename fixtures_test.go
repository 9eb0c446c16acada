package toolbox

import (
	"context"
	"errors"
	"strings"

	"github.com/invopop/jsonschema"
)

type SearchArgs struct {
	Query string `json:"query" jsonschema:"title=Query,description=Search terms"`
	Limit int    `json:"limit,omitempty" jsonschema:"minimum=1"`
}

type DescribedArgs struct {
	Text string `json:"text"`
}

func (DescribedArgs) JSONSchemaExtend(s *jsonschema.Schema) {
	s.Description = "Shout the text."
}

type EmptyArgs struct{}

type RecordArgs struct {
	ID   int64  `json:"id"`
	Note string `json:"note,omitempty"`
}

type TreeNode struct {
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TicketArgs has fields named after schema keywords.
type TicketArgs struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

type RangeArgs struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (a RangeArgs) Validate() error {
	if a.Min > a.Max {
		return errors.New("min must not exceed max")
	}
	return nil
}

type PtrValidatedArgs struct {
	N int `json:"n"`
}

func (a *PtrValidatedArgs) Validate() error {
	if a.N < 0 {
		return errors.New("n must be non-negative")
	}
	return nil
}

func lookup(_ context.Context, a SearchArgs) (string, error) {
	return "found " + a.Query, nil
}

func shout(_ context.Context, a DescribedArgs) (string, error) {
	return strings.ToUpper(a.Text), nil
}

func lookupFunc(opts ...FuncOption) Func {
	return Define("lookup", lookup, opts...)
}
