package config

// Manifest represents the structure of the workspace manifest.
type Manifest struct {
	Name     string        `yaml:"name"`
	Projects []*ProjectDTO `yaml:"projects"`
	Schemes  []*SchemeDTO  `yaml:"schemes"`
}

// ProjectDTO represents a project definition in the manifest.
// Path is relative to the manifest's directory.
type ProjectDTO struct {
	Path    string                `yaml:"path"`
	Name    string                `yaml:"name"`
	Targets map[string]*TargetDTO `yaml:"targets"`
}

// TargetDTO represents a target definition in the manifest.
type TargetDTO struct {
	Product      string            `yaml:"product"`
	Sources      []string          `yaml:"sources"`
	Resources    []string          `yaml:"resources"`
	Settings     map[string]string `yaml:"settings"`
	Dependencies []string          `yaml:"dependencies"`
}

// SchemeDTO represents a scheme definition in the manifest.
type SchemeDTO struct {
	Name   string         `yaml:"name"`
	Shared bool           `yaml:"shared"`
	Test   *TestActionDTO `yaml:"test"`
}

// TestActionDTO lists the test targets of a scheme.
type TestActionDTO struct {
	Targets []TestableTargetDTO `yaml:"targets"`
}

// TestableTargetDTO references a test target as "project:name".
type TestableTargetDTO struct {
	Target         string `yaml:"target"`
	Parallelizable bool   `yaml:"parallelizable"`
	Skipped        bool   `yaml:"skipped"`
}

// SettingsFile represents the structure of shake.yaml.
// Paths are relative to the settings file's directory.
type SettingsFile struct {
	CacheRoot   string `yaml:"cache_root"`
	StagingRoot string `yaml:"staging_root"`
	Manifest    string `yaml:"manifest"`
}
