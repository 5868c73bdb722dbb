package domain

// TargetStatus is the outcome of the test cache for one test target reference.
type TargetStatus string

const (
	// TargetStatusScheduled indicates the target's tests still run.
	TargetStatusScheduled TargetStatus = "scheduled"
	// TargetStatusCached indicates the target and its whole dependency closure are unchanged.
	TargetStatusCached TargetStatus = "cached"
	// TargetStatusUnresolved indicates the scheme referenced a target missing from the graph.
	TargetStatusUnresolved TargetStatus = "unresolved"
)

// String returns the status as a string.
func (s TargetStatus) String() string {
	return string(s)
}
