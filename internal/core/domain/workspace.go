package domain

// Workspace holds the schemes generated for a set of projects.
type Workspace struct {
	Name     string
	Path     string
	Projects []string
	Schemes  []Scheme
}

// Scheme is a named grouping of actions. Only the test action is modeled.
type Scheme struct {
	Name       string
	Shared     bool
	TestAction *TestAction
}

// TestAction lists the targets whose tests the scheme runs, in order.
type TestAction struct {
	Targets []TestableTarget
}

// TestableTarget references a target by (project path, name). It is resolved against the graph
// at mapping time and may point at a target that no longer exists.
type TestableTarget struct {
	Target         TargetRef
	Skipped        bool
	Parallelizable bool
}

// Refs returns the referenced targets in declaration order.
func (a *TestAction) Refs() []TargetRef {
	if a == nil {
		return nil
	}
	refs := make([]TargetRef, len(a.Targets))
	for i, t := range a.Targets {
		refs[i] = t.Target
	}
	return refs
}

// WithSchemes returns a copy of the workspace carrying the given schemes.
func (w Workspace) WithSchemes(schemes []Scheme) Workspace {
	w.Schemes = schemes
	return w
}
