package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// CacheConfig carries the two marker roots used by one mapping pass.
//
// CacheRoot holds markers of test runs that completed successfully and is only ever read by the
// mapper. StagingRoot receives the markers of the current run; they are promoted into CacheRoot
// by a separate step once the tests are known to have passed.
type CacheConfig struct {
	CacheRoot   string
	StagingRoot string
}

// Validate checks that both roots are set and that neither lies inside the other.
// Staging is removed after promotion, so it must never contain the persistent cache.
func (c CacheConfig) Validate() error {
	if c.CacheRoot == "" {
		return ErrMissingCacheRoot
	}
	if c.StagingRoot == "" {
		return ErrMissingStagingRoot
	}

	cacheRoot, err := filepath.Abs(c.CacheRoot)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve cache root"), "path", c.CacheRoot)
	}
	stagingRoot, err := filepath.Abs(c.StagingRoot)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve staging root"), "path", c.StagingRoot)
	}
	if within(cacheRoot, stagingRoot) || within(stagingRoot, cacheRoot) {
		return zerr.With(
			zerr.With(zerr.Wrap(ErrCacheRootsNotDistinct, "invalid cache configuration"), "cache_root", cacheRoot),
			"staging_root", stagingRoot,
		)
	}
	return nil
}

// within reports whether path is dir itself or lies below it. Both paths must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// StagedMarkerPath returns where the marker for hash is staged.
func (c CacheConfig) StagedMarkerPath(hash ContentHash) string {
	return filepath.Join(c.StagingRoot, string(hash))
}
