package logging

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey struct{}

// ContextWithRequestID returns ctx carrying a request id that every logger
// backend appends as "request_id".
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return args
	}
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	return append(out, "request_id", id)
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
