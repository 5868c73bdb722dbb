package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shake/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/shell"      //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/sideeffect" //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shake/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			sideeffect.NodeID,
			shell.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.ContentHasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.MarkerStore](ctx)
	if err != nil {
		return nil, err
	}

	effects, err := graft.Dep[ports.SideEffectExecutor](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, loader, hasher, store, effects, runner, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tel), nil
}
