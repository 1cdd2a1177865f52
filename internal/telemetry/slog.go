// Package telemetry wires structured logging and OpenTelemetry export.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// TraceHandler wraps a slog.Handler and stamps trace_id / span_id onto every
// record whose context carries an active span. Handlers logged through
// slog.InfoContext and friends pick up the correlation automatically.
type TraceHandler struct {
	slog.Handler
}

// NewTraceHandler wraps h with trace-context injection.
func NewTraceHandler(h slog.Handler) *TraceHandler {
	return &TraceHandler{Handler: h}
}

func (t *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return t.Handler.Handle(ctx, r)
}

func (t *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: t.Handler.WithAttrs(attrs)}
}

func (t *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: t.Handler.WithGroup(name)}
}
