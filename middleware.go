package toolbox

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/skosovsky/toolbox"

// Invocation is a resolved, validated call about to reach a tool handler.
type Invocation struct {
	Tool   string // external name, as called
	Func   string // internal name
	Params any    // validated parameter model value
}

// Handler invokes a tool.
type Handler func(ctx context.Context, inv Invocation) (any, error)

// Middleware wraps a Handler with cross-cutting behavior (logging, recovery, tracing).
type Middleware func(Handler) Handler

// chain applies middlewares to h; the first middleware is outermost.
func chain(h Handler, middlewares []Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// WithLogging returns a middleware that logs start, end, duration, and errors.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, inv Invocation) (any, error) {
			logger.InfoContext(ctx, "tool start", "tool", inv.Tool, "func", inv.Func)
			start := time.Now()
			res, err := next(ctx, inv)
			dur := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "tool error", "tool", inv.Tool, "duration", dur, "error", err)
				return nil, err
			}
			logger.InfoContext(ctx, "tool end", "tool", inv.Tool, "duration", dur)
			return res, nil
		}
	}
}

// WithRecovery returns a middleware that turns a handler panic into an error.
func WithRecovery() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv Invocation) (res any, err error) {
			defer func() {
				if p := recover(); p != nil {
					res = nil
					err = &panicError{p: p}
				}
			}()
			return next(ctx, inv)
		}
	}
}

// WithTracing returns a middleware that records one span per tool call.
// A nil tracer uses the global OpenTelemetry tracer provider.
func WithTracing(tracer trace.Tracer) Middleware {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, inv Invocation) (any, error) {
			ctx, span := tracer.Start(ctx, "tool "+inv.Tool,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("tool.name", inv.Tool),
					attribute.String("tool.func", inv.Func),
				))
			defer span.End()
			res, err := next(ctx, inv)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			span.SetStatus(codes.Ok, "")
			return res, nil
		}
	}
}
