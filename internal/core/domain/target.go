package domain

import "strings"

// TargetRef identifies a target by the path of the project that owns it and its name.
// It is comparable and is the key used for every per-target table.
type TargetRef struct {
	ProjectPath InternedString
	Name        InternedString
}

// NewTargetRef creates a TargetRef from plain strings.
func NewTargetRef(projectPath, name string) TargetRef {
	return TargetRef{
		ProjectPath: NewInternedString(projectPath),
		Name:        NewInternedString(name),
	}
}

// String renders the reference as "project-path:name".
func (r TargetRef) String() string {
	return r.ProjectPath.String() + ":" + r.Name.String()
}

// Compare orders references by project path, then by name.
func (r TargetRef) Compare(other TargetRef) int {
	if c := r.ProjectPath.Compare(other.ProjectPath); c != 0 {
		return c
	}
	return r.Name.Compare(other.Name)
}

// ParseTargetRef parses "project-path:name". A bare name is resolved against defaultProject.
func ParseTargetRef(s, defaultProject string) TargetRef {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return NewTargetRef(s[:i], s[i+1:])
	}
	return NewTargetRef(defaultProject, s)
}

// Target represents a build unit inside a project.
// Sources and Resources are paths relative to the owning project's path; glob patterns are allowed.
type Target struct {
	Ref          TargetRef
	Product      InternedString
	Sources      []InternedString
	Resources    []InternedString
	Settings     map[string]string
	Dependencies []TargetRef
}

// NewTarget creates a target with interned sources and resources.
func NewTarget(ref TargetRef, product string, sources, resources []string) *Target {
	return &Target{
		Ref:       ref,
		Product:   NewInternedString(product),
		Sources:   internAll(sources),
		Resources: internAll(resources),
	}
}

// DependsOn appends direct dependencies and returns the target for chaining.
func (t *Target) DependsOn(refs ...TargetRef) *Target {
	t.Dependencies = append(t.Dependencies, refs...)
	return t
}

// Project groups targets that live under the same path.
type Project struct {
	Path    InternedString
	Name    string
	Targets []TargetRef
}
