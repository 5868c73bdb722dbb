package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands a target's input patterns into concrete files.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs resolves input patterns relative to root into a sorted list of unique files.
// A pattern may name a file, a directory (walked recursively) or a glob.
// A pattern that matches nothing is an error.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, pattern := range patterns {
		path := filepath.Join(root, pattern)

		matches := []string{path}
		if _, err := os.Stat(path); err != nil {
			matches, err = filepath.Glob(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
			}
			if len(matches) == 0 {
				return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, "cannot resolve input"), "path", path)
			}
		}

		for _, match := range matches {
			if err := r.collect(match, unique); err != nil {
				return nil, err
			}
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}

func (r *Resolver) collect(path string, into map[string]struct{}) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		into[path] = struct{}{}
		return nil
	}

	for file := range r.walker.WalkFiles(path) {
		into[file] = struct{}{}
	}
	return nil
}
