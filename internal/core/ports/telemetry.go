package ports

import (
	"context"
	"io"

	"go.trai.ch/shake/internal/core/domain"
)

// Telemetry records the progress of a run as vertices.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the vertex's output.
	Stdout() io.Writer
	// Log writes a status line for the vertex.
	Log(status domain.TargetStatus, msg string)
	// Cached marks the vertex as a cache hit.
	Cached()
	// Complete marks the vertex as done.
	Complete(err error)
}
