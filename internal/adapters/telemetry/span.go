package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shake/internal/core/domain"
)

const (
	outcomeCached = "cached"
	outcomeFailed = "failed"
	outcomeDone   = "done"
)

// spanVertex implements ports.Vertex on top of a span.
// Output written to Stdout is batched into "log" events.
type spanVertex struct {
	ctx       context.Context
	span      trace.Span
	stdout    *BatchProcessor
	completed metric.Int64Counter
	cached    bool
}

func (v *spanVertex) Stdout() io.Writer {
	return v.stdout
}

func (v *spanVertex) Log(status domain.TargetStatus, msg string) {
	v.span.AddEvent("status", trace.WithAttributes(
		attribute.String("shake.status", status.String()),
		attribute.String("message", msg),
	))
}

func (v *spanVertex) Cached() {
	v.cached = true
	v.span.SetAttributes(attribute.Bool("shake.cached", true))
}

func (v *spanVertex) Complete(err error) {
	_ = v.stdout.Close()

	outcome := outcomeDone
	switch {
	case err != nil:
		outcome = outcomeFailed
		v.span.RecordError(err)
		v.span.SetStatus(codes.Error, err.Error())
	case v.cached:
		outcome = outcomeCached
		v.span.SetStatus(codes.Ok, "")
	default:
		v.span.SetStatus(codes.Ok, "")
	}

	v.completed.Add(v.ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	v.span.End()
}

func (v *spanVertex) logEvent(data []byte) {
	v.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(data))))
}
