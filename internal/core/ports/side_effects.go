package ports

import (
	"context"

	"go.trai.ch/shake/internal/core/domain"
)

// SideEffectExecutor performs side effect descriptors.
//
//go:generate go run go.uber.org/mock/mockgen -source=side_effects.go -destination=mocks/mock_side_effects.go -package=mocks
type SideEffectExecutor interface {
	// Execute performs the effects in order and stops at the first failure.
	Execute(ctx context.Context, effects []domain.SideEffect) error
}
