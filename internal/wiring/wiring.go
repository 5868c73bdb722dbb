// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shake/internal/adapters/cas"
	_ "go.trai.ch/shake/internal/adapters/config"
	_ "go.trai.ch/shake/internal/adapters/fs"
	_ "go.trai.ch/shake/internal/adapters/logger"
	_ "go.trai.ch/shake/internal/adapters/shell"
	_ "go.trai.ch/shake/internal/adapters/sideeffect"
	_ "go.trai.ch/shake/internal/adapters/telemetry"
	_ "go.trai.ch/shake/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/shake/internal/app"
)
