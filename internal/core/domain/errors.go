package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when a target with the same project path and name is added twice.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrProjectAlreadyExists is returned when a project path is registered twice.
	ErrProjectAlreadyExists = zerr.New("project already exists")

	// ErrMissingDependency is returned when a target references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrHashComputationFailed is returned when the content of a target cannot be read or hashed.
	ErrHashComputationFailed = zerr.New("failed to compute content hash")

	// ErrInputNotFound is returned when a declared source or resource does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrCacheLookupFailed is returned when the persistent cache root cannot be queried.
	ErrCacheLookupFailed = zerr.New("failed to query test cache")

	// ErrMissingCacheRoot is returned when no persistent cache root is configured.
	ErrMissingCacheRoot = zerr.New("missing cache root")

	// ErrMissingStagingRoot is returned when no staging root is configured.
	ErrMissingStagingRoot = zerr.New("missing staging root")

	// ErrCacheRootsNotDistinct is returned when the staging root and the persistent cache root overlap.
	ErrCacheRootsNotDistinct = zerr.New("staging root and cache root must not contain each other")

	// ErrSideEffectFailed is returned when a side effect cannot be performed.
	ErrSideEffectFailed = zerr.New("failed to perform side effect")

	// ErrPromotionFailed is returned when staged markers cannot be promoted into the cache root.
	ErrPromotionFailed = zerr.New("failed to promote staged markers")

	// ErrTestExecutionFailed is returned when the external test command fails.
	ErrTestExecutionFailed = zerr.New("test execution failed")

	// ErrNoTestCommand is returned when the test command is empty.
	ErrNoTestCommand = zerr.New("no test command specified")

	// ErrConfigReadFailed is returned when a config or manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config or manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTargetName is returned when a manifest target name is empty or contains a colon.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrUnknownExporter is returned when a telemetry exporter name is not recognized.
	ErrUnknownExporter = zerr.New("unknown telemetry exporter")

	// ErrMissingProjectPath is returned when a manifest project has no path.
	ErrMissingProjectPath = zerr.New("missing project path")

	// ErrMissingSchemeName is returned when a manifest scheme has no name.
	ErrMissingSchemeName = zerr.New("missing scheme name")
)
