package ports

import "go.trai.ch/shake/internal/core/domain"

// MarkerStore queries and maintains existence-only markers in flat directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=marker_store.go -destination=mocks/mock_marker_store.go -package=mocks
type MarkerStore interface {
	// Exists reports whether a marker named hash exists under root.
	Exists(root string, hash domain.ContentHash) (bool, error)

	// List returns the markers under root in lexical order.
	// A missing root yields an empty list.
	List(root string) ([]domain.ContentHash, error)

	// Promote copies the markers named by hashes from staging into cacheRoot and returns the
	// hashes it copied. Markers already present in cacheRoot are left untouched; a hash with
	// no staged marker is an error. Other files under staging are ignored.
	Promote(staging, cacheRoot string, hashes []domain.ContentHash) ([]domain.ContentHash, error)
}
