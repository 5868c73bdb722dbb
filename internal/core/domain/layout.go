package domain

import "path/filepath"

const (
	// ShakeDirName is the name of the internal workspace directory.
	ShakeDirName = ".shake"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// TestsDirName is the name of the persistent test marker directory inside the cache directory.
	TestsDirName = "tests"

	// StagingDirName is the name of the directory holding one staging root per run.
	StagingDirName = "staging"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "shake.yaml"

	// ManifestFileName is the name of the default workspace manifest.
	ManifestFileName = "workspace.yaml"

	// TestTargetsEnv is the environment variable carrying the remaining test targets to the test command.
	TestTargetsEnv = "SHAKE_TEST_TARGETS"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default persistent cache root.
// It joins .shake, cache and tests.
func DefaultCachePath() string {
	return filepath.Join(ShakeDirName, CacheDirName, TestsDirName)
}

// DefaultStagingBase returns the directory holding per-run staging roots.
func DefaultStagingBase() string {
	return filepath.Join(ShakeDirName, StagingDirName)
}

// DefaultStagingPath returns the staging root for the given run.
func DefaultStagingPath(runID string) string {
	return filepath.Join(DefaultStagingBase(), runID)
}
