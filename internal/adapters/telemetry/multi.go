package telemetry

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
)

// Multi fans every vertex out to several recorders.
type Multi []ports.Telemetry

var _ ports.Telemetry = Multi(nil)

// Record starts a vertex on every recorder. The returned context is the one
// produced by the last recorder.
func (m Multi) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertices := make(multiVertex, 0, len(m))
	for _, t := range m {
		var v ports.Vertex
		ctx, v = t.Record(ctx, name)
		vertices = append(vertices, v)
	}
	return ctx, vertices
}

// Close closes every recorder and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, t := range m {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

type multiVertex []ports.Vertex

func (m multiVertex) Stdout() io.Writer {
	writers := make([]io.Writer, len(m))
	for i, v := range m {
		writers[i] = v.Stdout()
	}
	return io.MultiWriter(writers...)
}

func (m multiVertex) Log(status domain.TargetStatus, msg string) {
	for _, v := range m {
		v.Log(status, msg)
	}
}

func (m multiVertex) Cached() {
	for _, v := range m {
		v.Cached()
	}
}

func (m multiVertex) Complete(err error) {
	for _, v := range m {
		v.Complete(err)
	}
}
