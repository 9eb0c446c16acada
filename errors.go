package toolbox

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for toolbox. Use errors.Is to check.
var (
	ErrWrongArity          = errors.New("tool must accept exactly one parameter")
	ErrNotModel            = errors.New("tool parameter is not a structured model")
	ErrDescriptionConflict = errors.New("both tool and parameter model declare a description")
	ErrBadReturnType       = errors.New("tool return type is not textual")
	ErrValidation          = errors.New("validation failed")
)

// InvariantError reports a function that does not satisfy the single structured
// parameter contract. Err is ErrWrongArity or ErrNotModel.
// It is raised at registration or schema generation time, never during dispatch.
type InvariantError struct {
	Tool   string
	Params []reflect.Type
	Err    error
}

func (e *InvariantError) Error() string {
	if errors.Is(e.Err, ErrWrongArity) {
		return fmt.Sprintf("tool %q: %v, got %d", e.Tool, e.Err, len(e.Params))
	}
	return fmt.Sprintf("tool %q: %v (%v)", e.Tool, e.Err, e.Params)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// ConflictError is returned in strict mode when the tool documentation and its
// parameter model both supply a non-empty description.
type ConflictError struct {
	Tool  string
	Model reflect.Type
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tool %q and parameter model %v: %v", e.Tool, e.Model, ErrDescriptionConflict)
}

func (e *ConflictError) Unwrap() error { return ErrDescriptionConflict }

// ReturnTypeError is returned when a tool's declared return type is neither
// unspecified nor textual.
type ReturnTypeError struct {
	Tool  string
	Types []reflect.Type
}

func (e *ReturnTypeError) Error() string {
	return fmt.Sprintf("tool %q returns %v: %v", e.Tool, e.Types, ErrBadReturnType)
}

func (e *ReturnTypeError) Unwrap() error { return ErrBadReturnType }

// ValidationError reports arguments that do not conform to the parameter model of
// a known tool. It is propagated to the caller of Process, not folded into ToolResult.
// Err wraps ErrValidation and, when available, the underlying cause.
type ValidationError struct {
	Tool   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tool %q: invalid arguments: %s", e.Tool, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CallError wraps an error returned (or a panic raised) by a tool handler.
type CallError struct {
	Tool string
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// IsInvariantError returns true if err is or wraps an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// newValidationError wraps cause together with ErrValidation so both match errors.Is.
func newValidationError(tool string, cause error) *ValidationError {
	return &ValidationError{Tool: tool, Reason: cause.Error(), Err: errors.Join(ErrValidation, cause)}
}

// panicError wraps a recovered panic value; used by the WithRecovery middleware.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
