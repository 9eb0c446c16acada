package toolbox

import (
	"log/slog"
)

// options hold settings shared by SchemaGenerator and ToolBox.
type options struct {
	strict      bool
	mappings    []NameMapping
	logger      *slog.Logger
	middlewares []Middleware
}

// Option configures a SchemaGenerator or a ToolBox.
type Option func(*options)

func defaultOptions() options {
	return options{
		strict: true,
		logger: slog.New(slog.DiscardHandler),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStrict controls the description policy. In strict mode (the default) a tool
// whose documentation and parameter model both supply a description is rejected
// with ConflictError; otherwise the documentation wins.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithNameMappings sets the internal/external name aliases. Order matters: the
// first pair matching a name wins.
func WithNameMappings(mappings ...NameMapping) Option {
	return func(o *options) {
		o.mappings = append(o.mappings, mappings...)
	}
}

// WithLogger sets the logger for registration and dispatch events. A nil logger
// keeps the default, which discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMiddleware appends middlewares applied to every dispatched call (onion
// order: the first middleware is outermost).
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}
