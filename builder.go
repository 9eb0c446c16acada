package toolbox

import (
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// invokeFunc calls the underlying Go function with a validated parameter object.
type invokeFunc func(ctx context.Context, params any) (any, error)

// Func is an explicit tool manifest: the internal name, documentation text,
// declared parameter types and declared return types of a callable, plus the
// means to invoke it. The single structured parameter and textual return
// invariants are checked against the manifest when it is registered or
// described, not when it is built.
type Func struct {
	name    string
	doc     string
	params  []reflect.Type
	returns []reflect.Type // empty: unspecified
	invoke  invokeFunc
}

// FuncOption configures a Func (e.g. WithDoc).
type FuncOption func(*Func)

// WithDoc sets the documentation text. Its short description becomes the tool
// description unless the parameter model supplies one (see WithStrict).
func WithDoc(doc string) FuncOption {
	return func(f *Func) {
		f.doc = doc
	}
}

// Define builds a Func from a typed function. T is the parameter model and R the
// declared return type: string (or any string-kinded type) and any are accepted
// when generating descriptors, anything else is rejected with ReturnTypeError.
func Define[T any, R any](name string, fn func(ctx context.Context, params T) (R, error), opts ...FuncOption) Func {
	f := Func{
		name:   name,
		params: []reflect.Type{reflect.TypeFor[T]()},
		invoke: func(ctx context.Context, params any) (any, error) {
			return fn(ctx, params.(T))
		},
	}
	if ret := reflect.TypeFor[R](); !isUnspecified(ret) {
		f.returns = []reflect.Type{ret}
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// FromFunc builds a Func from an arbitrary Go function value, reading the
// manifest from its signature. A leading context.Context parameter and a
// trailing error result are plumbing and are not part of the manifest.
// FromFunc panics if fn is not a function.
func FromFunc(name string, fn any, opts ...FuncOption) Func {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		panic(fmt.Sprintf("toolbox: FromFunc %q: %T is not a function", name, fn))
	}
	rt := rv.Type()
	withCtx := rt.NumIn() > 0 && rt.In(0) == contextType
	withErr := rt.NumOut() > 0 && rt.Out(rt.NumOut()-1) == errorType

	f := Func{name: name}
	for i := 0; i < rt.NumIn(); i++ {
		if i == 0 && withCtx {
			continue
		}
		f.params = append(f.params, rt.In(i))
	}
	nout := rt.NumOut()
	if withErr {
		nout--
	}
	for i := 0; i < nout; i++ {
		f.returns = append(f.returns, rt.Out(i))
	}
	if len(f.returns) == 1 && isUnspecified(f.returns[0]) {
		f.returns = nil
	}
	f.invoke = func(ctx context.Context, params any) (any, error) {
		in := make([]reflect.Value, 0, 2)
		if withCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		in = append(in, reflect.ValueOf(params))
		out := rv.Call(in)
		var err error
		if withErr {
			if e := out[len(out)-1]; !e.IsNil() {
				err = e.Interface().(error)
			}
			out = out[:len(out)-1]
		}
		if len(out) == 0 {
			return nil, err
		}
		return out[0].Interface(), err
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Name returns the internal function name.
func (f Func) Name() string { return f.name }

// Doc returns the documentation text.
func (f Func) Doc() string { return f.doc }

// Params returns the declared parameter types.
func (f Func) Params() []reflect.Type { return append([]reflect.Type(nil), f.params...) }

// Returns returns the declared return types; empty means unspecified.
func (f Func) Returns() []reflect.Type { return append([]reflect.Type(nil), f.returns...) }

// paramModel checks the single structured parameter invariant and reflects the model.
func (f Func) paramModel() (*model, error) {
	if len(f.params) != 1 {
		return nil, &InvariantError{Tool: f.name, Params: f.Params(), Err: ErrWrongArity}
	}
	m, err := newModel(f.params[0])
	if err != nil {
		return nil, &InvariantError{Tool: f.name, Params: f.Params(), Err: err}
	}
	return m, nil
}

// checkReturn accepts an unspecified or textual return type.
func (f Func) checkReturn() error {
	switch {
	case len(f.returns) == 0:
		return nil
	case len(f.returns) == 1 && f.returns[0].Kind() == reflect.String:
		return nil
	default:
		return &ReturnTypeError{Tool: f.name, Types: f.Returns()}
	}
}

// isUnspecified reports whether t is the empty interface, the Go rendering of an
// undeclared return type.
func isUnspecified(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// textOf renders a handler result as observations.
func textOf(v any) string {
	if v == nil {
		return ""
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}
