// Package cas implements the content-addressed marker store backing the test cache.
package cas

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MarkerStore = (*Store)(nil)

// Store keeps markers as files in flat directories. The file name is the hash;
// the content is irrelevant.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Exists reports whether root holds a marker for hash.
// A missing root is an empty cache, not an error.
func (s *Store) Exists(root string, hash domain.ContentHash) (bool, error) {
	path := filepath.Join(root, string(hash))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat marker"), "path", path)
	}
	return info.Mode().IsRegular(), nil
}

// List returns the markers under root in lexical order.
func (s *Store) List(root string) ([]domain.ContentHash, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list markers"), "path", root)
	}

	hashes := make([]domain.ContentHash, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		hashes = append(hashes, domain.ContentHash(entry.Name()))
	}
	slices.Sort(hashes)
	return hashes, nil
}

// Promote copies the staged markers named by hashes that cacheRoot does not hold yet.
// Markers already present are never rewritten, and files under stagingRoot that are not
// listed stay where they are. It returns the promoted hashes.
func (s *Store) Promote(stagingRoot, cacheRoot string, hashes []domain.ContentHash) ([]domain.ContentHash, error) {
	if len(hashes) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(cacheRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPromotionFailed, err), "path", cacheRoot)
	}

	var promoted []domain.ContentHash
	for _, hash := range hashes {
		created, err := copyMarker(filepath.Join(stagingRoot, string(hash)), filepath.Join(cacheRoot, string(hash)))
		if err != nil {
			return promoted, zerr.With(errors.Join(domain.ErrPromotionFailed, err), "hash", string(hash))
		}
		if created {
			promoted = append(promoted, hash)
		}
	}
	return promoted, nil
}

// copyMarker creates dst exclusively and copies src into it.
// It reports false when dst already exists.
func copyMarker(src, dst string) (bool, error) {
	in, err := os.Open(src) //nolint:gosec // Path is built from the staging root
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to open staged marker"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	//nolint:gosec // Path is built from the cache root
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to create marker"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return false, zerr.With(zerr.Wrap(err, "failed to write marker"), "path", dst)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return false, zerr.With(zerr.Wrap(err, "failed to close marker"), "path", dst)
	}
	return true, nil
}
