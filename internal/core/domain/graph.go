// Package domain contains the core domain models for the target graph and its test cache.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph owns every target and project of a workspace.
// Targets live in an arena keyed by TargetRef; edges are references into that arena.
type Graph struct {
	targets   map[TargetRef]*Target
	order     []TargetRef
	projects  map[InternedString]*Project
	paths     []InternedString
	workspace Workspace
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets:  make(map[TargetRef]*Target),
		projects: make(map[InternedString]*Project),
	}
}

// AddProject registers a project.
// It returns an error if a project with the same path already exists.
func (g *Graph) AddProject(p *Project) error {
	if _, exists := g.projects[p.Path]; exists {
		return zerr.With(zerr.Wrap(ErrProjectAlreadyExists, "cannot add project"), "project_path", p.Path.String())
	}
	g.projects[p.Path] = p
	g.paths = append(g.paths, p.Path)
	return nil
}

// AddTarget adds a target to the graph and to its owning project, if that project is known.
// It returns an error if a target with the same reference already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Ref]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "cannot add target"), "target", t.Ref.String())
	}
	g.targets[t.Ref] = t
	g.order = append(g.order, t.Ref)
	if p, ok := g.projects[t.Ref.ProjectPath]; ok {
		p.Targets = append(p.Targets, t.Ref)
	}
	return nil
}

// Target looks a target up by project path and name.
// A reference that does not resolve is reported as absent, never as an error.
func (g *Graph) Target(projectPath, name string) (*Target, bool) {
	return g.TargetByRef(NewTargetRef(projectPath, name))
}

// TargetByRef looks a target up by reference.
func (g *Graph) TargetByRef(ref TargetRef) (*Target, bool) {
	t, ok := g.targets[ref]
	return t, ok
}

// Targets yields every target in insertion order.
func (g *Graph) Targets() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, ref := range g.order {
			if !yield(g.targets[ref]) {
				return
			}
		}
	}
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Project looks a project up by path.
func (g *Graph) Project(path string) (*Project, bool) {
	p, ok := g.projects[NewInternedString(path)]
	return p, ok
}

// Projects yields every project in insertion order.
func (g *Graph) Projects() iter.Seq[*Project] {
	return func(yield func(*Project) bool) {
		for _, path := range g.paths {
			if !yield(g.projects[path]) {
				return
			}
		}
	}
}

// Workspace returns the graph's workspace.
func (g *Graph) Workspace() Workspace {
	return g.workspace
}

// SetWorkspace replaces the workspace in place. It is meant for graph construction.
func (g *Graph) SetWorkspace(ws Workspace) {
	g.workspace = ws
}

// WithWorkspace returns a new graph that shares every target and project with g
// and carries the given workspace. g itself is left untouched.
func (g *Graph) WithWorkspace(ws Workspace) *Graph {
	return &Graph{
		targets:   g.targets,
		order:     g.order,
		projects:  g.projects,
		paths:     g.paths,
		workspace: ws,
	}
}

// Validate checks that every dependency resolves and that the dependency graph is acyclic.
func (g *Graph) Validate() error {
	visited := make(map[TargetRef]int, len(g.targets)) // 0: unvisited, 1: visiting, 2: visited
	var path []TargetRef

	var visit func(ref TargetRef) error
	visit = func(ref TargetRef) error {
		visited[ref] = 1
		path = append(path, ref)

		for _, dep := range g.targets[ref].Dependencies {
			if _, exists := g.targets[dep]; !exists {
				return zerr.With(
					zerr.With(zerr.Wrap(ErrMissingDependency, "invalid dependency"), "dependency", dep.String()),
					"target", ref.String(),
				)
			}
			if visited[dep] == 1 {
				return NewCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[ref] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, ref := range g.order {
		if visited[ref] == 0 {
			if err := visit(ref); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewCycleError builds a cycle error whose "cycle" metadata lists the path from the first
// occurrence of dep in path back to dep.
func NewCycleError(path []TargetRef, dep TargetRef) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}

	var b strings.Builder
	for _, node := range path[startIdx:] {
		b.WriteString(node.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "dependency graph is not acyclic"), "cycle", b.String())
}
