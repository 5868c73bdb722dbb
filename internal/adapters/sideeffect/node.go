package sideeffect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shake/internal/adapters/shell"
	"go.trai.ch/shake/internal/core/ports"
)

const NodeID graft.ID = "adapter.side_effect_executor"

func init() {
	graft.Register(graft.Node[ports.SideEffectExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.SideEffectExecutor, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(runner), nil
		},
	})
}
