package testcache

import (
	"errors"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
)

type resolveState uint8

const (
	unvisited resolveState = iota
	inProgress
	valid
	invalid
)

// Resolver decides whether a target's tests can be skipped.
// A target is cache-valid when its own hash has a marker under the cache root
// and every target it transitively depends on is cache-valid too.
//
// Decisions are memoized for the lifetime of the Resolver, so one Resolver must
// serve exactly one mapping pass.
type Resolver struct {
	graph     *domain.Graph
	hashes    domain.ContentHashes
	store     ports.MarkerStore
	cacheRoot string
	memo      map[domain.TargetRef]resolveState
}

// NewResolver creates a Resolver over a graph snapshot and its content hashes.
func NewResolver(
	graph *domain.Graph,
	hashes domain.ContentHashes,
	store ports.MarkerStore,
	cacheRoot string,
) *Resolver {
	return &Resolver{
		graph:     graph,
		hashes:    hashes,
		store:     store,
		cacheRoot: cacheRoot,
		memo:      make(map[domain.TargetRef]resolveState, graph.TargetCount()),
	}
}

type frame struct {
	ref  domain.TargetRef
	next int
}

// IsCacheValid reports whether ref is cache-valid.
// Every dependency is decided before the target itself, and each target is looked
// up in the marker store at most once per Resolver.
func (r *Resolver) IsCacheValid(ref domain.TargetRef) (bool, error) {
	switch r.memo[ref] {
	case valid:
		return true, nil
	case invalid:
		return false, nil
	}

	r.memo[ref] = inProgress
	stack := []frame{{ref: ref}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		target, found := r.graph.TargetByRef(top.ref)

		if found && top.next < len(target.Dependencies) {
			dep := target.Dependencies[top.next]
			top.next++

			switch r.memo[dep] {
			case inProgress:
				return false, domain.NewCycleError(stackPath(stack), dep)
			case unvisited:
				r.memo[dep] = inProgress
				stack = append(stack, frame{ref: dep})
			}
			continue
		}

		state, err := r.decide(top.ref, target, found)
		if err != nil {
			return false, err
		}
		r.memo[top.ref] = state
		stack = stack[:len(stack)-1]
	}

	return r.memo[ref] == valid, nil
}

// decide settles a target whose dependencies are all decided.
func (r *Resolver) decide(ref domain.TargetRef, target *domain.Target, found bool) (resolveState, error) {
	// A reference that is not in the graph cannot prove its closure unchanged.
	if !found {
		return invalid, nil
	}

	depsValid := true
	for _, dep := range target.Dependencies {
		if r.memo[dep] != valid {
			depsValid = false
		}
	}

	hash, ok := r.hashes[ref]
	if !ok {
		return invalid, nil
	}

	exists, err := r.store.Exists(r.cacheRoot, hash)
	if err != nil {
		return invalid, zerr.With(
			zerr.With(errors.Join(domain.ErrCacheLookupFailed, err), "target", ref.String()),
			"hash", string(hash),
		)
	}

	if exists && depsValid {
		return valid, nil
	}
	return invalid, nil
}

func stackPath(stack []frame) []domain.TargetRef {
	path := make([]domain.TargetRef, len(stack))
	for i, f := range stack {
		path[i] = f.ref
	}
	return path
}
