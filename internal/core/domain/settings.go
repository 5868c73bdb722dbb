package domain

// Settings are the values read from the settings file.
// Empty fields fall back to the defaults from layout.go.
type Settings struct {
	CacheRoot   string
	StagingRoot string
	Manifest    string
}

// WithDefaults fills empty fields. runID names the staging root when none is configured.
func (s Settings) WithDefaults(runID string) Settings {
	if s.CacheRoot == "" {
		s.CacheRoot = DefaultCachePath()
	}
	if s.StagingRoot == "" {
		s.StagingRoot = DefaultStagingPath(runID)
	}
	if s.Manifest == "" {
		s.Manifest = ManifestFileName
	}
	return s
}

// CacheConfig returns the marker roots of the settings.
func (s Settings) CacheConfig() CacheConfig {
	return CacheConfig{
		CacheRoot:   s.CacheRoot,
		StagingRoot: s.StagingRoot,
	}
}
