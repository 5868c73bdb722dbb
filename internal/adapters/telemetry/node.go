package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shake/internal/adapters/telemetry/progrock"
	"go.trai.ch/shake/internal/core/ports"
)

const (
	// OTelNodeID is the unique identifier for the OpenTelemetry recorder node.
	OTelNodeID graft.ID = "adapter.telemetry.otel"
	// NodeID is the unique identifier for the combined telemetry node.
	NodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*OTel]{
		ID:        OTelNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*OTel, error) {
			return New(ctx, DefaultConfig())
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID, OTelNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			recorder, err := graft.Dep[*progrock.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[*OTel](ctx)
			if err != nil {
				return nil, err
			}
			return Multi{recorder, tracer}, nil
		},
	})
}
