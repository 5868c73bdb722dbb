package testcache

import "go.trai.ch/shake/internal/core/domain"

// planSideEffects stages one empty marker per distinct hash under the staging root.
// The persistent cache root is never written here.
func planSideEffects(config domain.CacheConfig, distinct []domain.ContentHash) []domain.SideEffect {
	effects := make([]domain.SideEffect, 0, len(distinct))
	for _, hash := range distinct {
		effects = append(effects, domain.FileEffect(domain.FileDescriptor{
			Path:  config.StagedMarkerPath(hash),
			State: domain.FilePresent,
		}))
	}
	return effects
}
