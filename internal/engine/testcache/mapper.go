// Package testcache prunes test targets whose inputs did not change since the last
// successful test run.
package testcache

import (
	"context"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
)

var _ ports.GraphMapper = (*Mapper)(nil)

// Mapper is the test-cache pipeline stage.
type Mapper struct {
	config domain.CacheConfig
	hasher ports.ContentHasher
	store  ports.MarkerStore
}

// NewMapper creates a Mapper bound to the given cache roots.
func NewMapper(config domain.CacheConfig, hasher ports.ContentHasher, store ports.MarkerStore) (*Mapper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Mapper{
		config: config,
		hasher: hasher,
		store:  store,
	}, nil
}

// Map rewrites the workspace schemes of graph and plans the marker writes for this run.
func (m *Mapper) Map(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error) {
	mapped, effects, _, err := m.MapWithReport(ctx, graph)
	return mapped, effects, err
}

// MapWithReport is Map that also reports which test targets were skipped.
// The input graph is never modified; hashing errors are returned as they are.
func (m *Mapper) MapWithReport(
	ctx context.Context,
	graph *domain.Graph,
) (*domain.Graph, []domain.SideEffect, Report, error) {
	hashes, err := m.hasher.ContentHashes(ctx, graph)
	if err != nil {
		return nil, nil, Report{}, err
	}

	resolver := NewResolver(graph, hashes, m.store, m.config.CacheRoot)
	schemes, report, err := rewriteSchemes(graph, resolver)
	if err != nil {
		return nil, nil, Report{}, err
	}

	report.Staged = hashes.Distinct()
	mapped := graph.WithWorkspace(graph.Workspace().WithSchemes(schemes))
	return mapped, planSideEffects(m.config, report.Staged), report, nil
}
