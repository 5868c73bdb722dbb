// Package pipeline composes graph mappers.
package pipeline

import (
	"context"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphMapper = (*Sequential)(nil)

// MapperFunc adapts a function to ports.GraphMapper.
type MapperFunc func(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error)

// Map calls f(ctx, graph).
func (f MapperFunc) Map(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error) {
	return f(ctx, graph)
}

// Sequential applies its stages in order. Each stage receives the graph returned by
// the previous one, and side effects are collected in stage order.
type Sequential struct {
	Stages []ports.GraphMapper
}

// New creates a Sequential pipeline.
func New(stages ...ports.GraphMapper) *Sequential {
	return &Sequential{Stages: stages}
}

// Map runs every stage. It stops at the first failing stage and returns no partial result.
func (s *Sequential) Map(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error) {
	var effects []domain.SideEffect
	for i, stage := range s.Stages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		mapped, stageEffects, err := stage.Map(ctx, graph)
		if err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "mapping stage failed"), "stage", i)
		}
		graph = mapped
		effects = append(effects, stageEffects...)
	}
	return graph, effects, nil
}
