package ports

import (
	"context"

	"go.trai.ch/shake/internal/core/domain"
)

// ContentHasher fingerprints targets from their own inputs.
//
// Implementations must be deterministic, must cover every target of the graph and must not
// fold dependency hashes into a target's hash.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	// ContentHashes computes the hash of every target in the graph.
	// It fails with an error wrapping domain.ErrHashComputationFailed when an input cannot be read.
	ContentHashes(ctx context.Context, graph *domain.Graph) (domain.ContentHashes, error)
}
