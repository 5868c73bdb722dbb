package fs

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ContentHasher = (*Hasher)(nil)

// Hasher computes content hashes of targets from the files on disk.
type Hasher struct {
	resolver *Resolver
}

// NewHasher creates a new Hasher.
func NewHasher(resolver *Resolver) *Hasher {
	return &Hasher{resolver: resolver}
}

// ContentHashes hashes every target of the graph concurrently.
// The first failure cancels the remaining work and no partial mapping is returned.
func (h *Hasher) ContentHashes(ctx context.Context, graph *domain.Graph) (domain.ContentHashes, error) {
	targets := slices.Collect(graph.Targets())
	results := make([]domain.ContentHash, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			hash, err := h.ComputeTargetHash(target)
			if err != nil {
				return zerr.With(errors.Join(domain.ErrHashComputationFailed, err), "target", target.Ref.String())
			}
			results[i] = hash
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	hashes := make(domain.ContentHashes, len(targets))
	for i, target := range targets {
		hashes[target.Ref] = results[i]
	}
	return hashes, nil
}

// ComputeTargetHash hashes the target's own definition, sources and resources.
// Dependencies are not part of the hash.
func (h *Hasher) ComputeTargetHash(target *domain.Target) (domain.ContentHash, error) {
	hasher := xxhash.New()
	root := target.Ref.ProjectPath.String()

	h.hashTargetDefinition(target, hasher)

	for _, inputs := range [][]domain.InternedString{target.Sources, target.Resources} {
		if err := h.hashInputs(inputs, root, hasher); err != nil {
			return "", err
		}
		_, _ = hasher.Write([]byte{0}) // Section separator
	}

	return domain.ContentHash(fmt.Sprintf("%016x", hasher.Sum64())), nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the manifest
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// hashTargetDefinition hashes the target's name, product and settings.
func (h *Hasher) hashTargetDefinition(target *domain.Target, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(target.Ref.Name.String())
	_, _ = hasher.Write([]byte{0})

	_, _ = hasher.WriteString(target.Product.String())
	_, _ = hasher.Write([]byte{0})

	keys := make([]string, 0, len(target.Settings))
	for k := range target.Settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(target.Settings[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

func (h *Hasher) hashInputs(inputs []domain.InternedString, root string, hasher io.Writer) error {
	if len(inputs) == 0 {
		return nil
	}

	patterns := make([]string, len(inputs))
	for i, input := range inputs {
		patterns[i] = input.String()
	}

	files, err := h.resolver.ResolveInputs(patterns, root)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := h.hashFile(file, root, hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path, root string, mainHasher io.Writer) error {
	// Paths are hashed relative to the project so that markers survive a moved checkout.
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	_, _ = mainHasher.Write([]byte(filepath.ToSlash(rel)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
