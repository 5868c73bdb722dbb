// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/shake/internal/core/domain"
)

// GraphMapper is one stage of the mapper pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=mapper.go -destination=mocks/mock_mapper.go -package=mocks
type GraphMapper interface {
	// Map transforms the graph and describes the side effects to perform once the whole
	// pipeline succeeded. It never performs those side effects itself.
	Map(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error)
}
