package domain

import (
	"maps"
	"slices"
)

// ContentHash is the fingerprint of a target's own inputs.
// It never covers the hashes of the target's dependencies.
type ContentHash string

// ContentHashes maps every hashed target to its fingerprint.
type ContentHashes map[TargetRef]ContentHash

// Distinct returns the distinct hash values in lexical order.
func (h ContentHashes) Distinct() []ContentHash {
	values := slices.Collect(maps.Values(h))
	slices.Sort(values)
	return slices.Compact(values)
}
