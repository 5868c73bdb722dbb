package testcache

import (
	"go.trai.ch/shake/internal/core/domain"
)

// Report describes what a mapping pass decided about the workspace's test targets.
type Report struct {
	// Skipped lists cache-valid test targets, deduplicated, in order of first appearance.
	Skipped []domain.TargetRef
	// Unresolved lists scheme references that name no target in the graph.
	Unresolved []domain.TargetRef
	// Staged lists the distinct hashes whose markers this pass stages, in lexical order.
	// Only these markers may be promoted once the run succeeded.
	Staged []domain.ContentHash
}

// rewriteSchemes returns the workspace schemes with every cache-valid test target
// removed from their test actions. The resolver is shared by all schemes.
func rewriteSchemes(graph *domain.Graph, resolver *Resolver) ([]domain.Scheme, Report, error) {
	schemes := graph.Workspace().Schemes
	rewritten := make([]domain.Scheme, 0, len(schemes))

	var report Report
	skipped := make(map[domain.TargetRef]struct{})
	unresolved := make(map[domain.TargetRef]struct{})

	for _, scheme := range schemes {
		if scheme.TestAction == nil {
			rewritten = append(rewritten, scheme)
			continue
		}

		targets, missing := testableTargets(scheme, graph)
		for _, ref := range missing {
			if _, seen := unresolved[ref]; !seen {
				unresolved[ref] = struct{}{}
				report.Unresolved = append(report.Unresolved, ref)
			}
		}

		cached := make(map[domain.TargetRef]struct{})
		for _, target := range targets {
			ok, err := resolver.IsCacheValid(target.Ref)
			if err != nil {
				return nil, Report{}, err
			}
			if !ok {
				continue
			}
			cached[target.Ref] = struct{}{}
			if _, seen := skipped[target.Ref]; !seen {
				skipped[target.Ref] = struct{}{}
				report.Skipped = append(report.Skipped, target.Ref)
			}
		}

		kept := make([]domain.TestableTarget, 0, len(scheme.TestAction.Targets))
		for _, tt := range scheme.TestAction.Targets {
			if _, isCached := cached[tt.Target]; isCached {
				continue
			}
			if _, isMissing := unresolved[tt.Target]; isMissing {
				continue
			}
			kept = append(kept, tt)
		}

		scheme.TestAction = &domain.TestAction{Targets: kept}
		rewritten = append(rewritten, scheme)
	}

	return rewritten, report, nil
}

// testableTargets resolves a scheme's test references against the graph.
// References that do not resolve are returned separately.
func testableTargets(scheme domain.Scheme, graph *domain.Graph) ([]*domain.Target, []domain.TargetRef) {
	var targets []*domain.Target
	var missing []domain.TargetRef
	for _, ref := range scheme.TestAction.Refs() {
		target, ok := graph.Target(ref.ProjectPath.String(), ref.Name.String())
		if !ok {
			missing = append(missing, ref)
			continue
		}
		targets = append(targets, target)
	}
	return targets, missing
}
