package ports

import "go.trai.ch/shake/internal/core/domain"

// ManifestLoader loads the target graph of a workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path and returns the validated graph.
	Load(path string) (*domain.Graph, error)
}

// SettingsLoader loads the tool settings.
type SettingsLoader interface {
	// LoadSettings reads the settings file at path. A missing file yields the defaults.
	LoadSettings(path string) (domain.Settings, error)
}
