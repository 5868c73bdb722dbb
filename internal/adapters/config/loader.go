// Package config loads the workspace manifest and the shake settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	_ ports.ManifestLoader = (*Loader)(nil)
	_ ports.SettingsLoader = (*Loader)(nil)
)

// Loader implements ports.ManifestLoader and ports.SettingsLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest at path and returns the validated graph.
// Project paths are resolved against the manifest's directory.
func (l *Loader) Load(path string) (*domain.Graph, error) {
	var manifest Manifest
	if err := readAndUnmarshalYAML(path, &manifest); err != nil {
		return nil, err
	}

	root := filepath.Dir(path)
	g := domain.NewGraph()

	// Manifest references name projects by their declared path or name.
	projects := make(map[string]string, len(manifest.Projects)*2)
	paths := make([]string, 0, len(manifest.Projects))

	for _, dto := range manifest.Projects {
		if dto.Path == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingProjectPath, "invalid project"), "project_name", dto.Name)
		}
		resolved := resolvePath(root, dto.Path)
		name := dto.Name
		if name == "" {
			name = filepath.Base(resolved)
		}
		if err := g.AddProject(&domain.Project{Path: domain.NewInternedString(resolved), Name: name}); err != nil {
			return nil, err
		}
		projects[dto.Path] = resolved
		projects[name] = resolved
		paths = append(paths, resolved)
	}

	for _, dto := range manifest.Projects {
		resolved := projects[dto.Path]
		if len(dto.Targets) == 0 {
			l.Logger.Warn(fmt.Sprintf("project %s declares no targets", dto.Path))
			continue
		}
		if err := addProjectTargets(g, dto, resolved, projects); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	schemes, err := buildSchemes(manifest.Schemes, projects)
	if err != nil {
		return nil, err
	}

	g.SetWorkspace(domain.Workspace{
		Name:     manifest.Name,
		Path:     root,
		Projects: paths,
		Schemes:  schemes,
	})
	return g, nil
}

// LoadSettings reads the settings file at path.
// A missing file yields zero settings so that the defaults apply.
func (l *Loader) LoadSettings(path string) (domain.Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return domain.Settings{}, nil
	}

	var file SettingsFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Settings{}, err
	}

	root := filepath.Dir(path)
	return domain.Settings{
		CacheRoot:   resolveOptionalPath(root, file.CacheRoot),
		StagingRoot: resolveOptionalPath(root, file.StagingRoot),
		Manifest:    resolveOptionalPath(root, file.Manifest),
	}, nil
}

func addProjectTargets(g *domain.Graph, dto *ProjectDTO, projectPath string, projects map[string]string) error {
	// Map iteration order is random; sort so targets are added deterministically.
	names := make([]string, 0, len(dto.Targets))
	for name := range dto.Targets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := validateTargetName(name); err != nil {
			return zerr.With(err, "project", dto.Path)
		}
		t := dto.Targets[name]
		if t == nil {
			t = &TargetDTO{}
		}

		target := domain.NewTarget(
			domain.NewTargetRef(projectPath, name),
			t.Product,
			canonicalizeStrings(t.Sources),
			canonicalizeStrings(t.Resources),
		)
		target.Settings = t.Settings
		for _, dep := range t.Dependencies {
			target.DependsOn(resolveRef(dep, projectPath, projects))
		}

		if err := g.AddTarget(target); err != nil {
			return err
		}
	}
	return nil
}

func buildSchemes(dtos []*SchemeDTO, projects map[string]string) ([]domain.Scheme, error) {
	schemes := make([]domain.Scheme, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Name == "" {
			return nil, domain.ErrMissingSchemeName
		}
		scheme := domain.Scheme{Name: dto.Name, Shared: dto.Shared}
		if dto.Test != nil {
			action := &domain.TestAction{Targets: make([]domain.TestableTarget, 0, len(dto.Test.Targets))}
			for _, tt := range dto.Test.Targets {
				action.Targets = append(action.Targets, domain.TestableTarget{
					Target:         resolveRef(tt.Target, "", projects),
					Parallelizable: tt.Parallelizable,
					Skipped:        tt.Skipped,
				})
			}
			scheme.TestAction = action
		}
		schemes = append(schemes, scheme)
	}
	return schemes, nil
}

// resolveRef parses "project:name" or a bare name owned by defaultProject.
// Unknown projects are kept verbatim so that the reference stays unresolved.
func resolveRef(s, defaultProject string, projects map[string]string) domain.TargetRef {
	ref := domain.ParseTargetRef(s, defaultProject)
	if resolved, ok := projects[ref.ProjectPath.String()]; ok {
		return domain.NewTargetRef(resolved, ref.Name.String())
	}
	return ref
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

func resolveOptionalPath(root, path string) string {
	if path == "" {
		return ""
	}
	return resolvePath(root, path)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}
	return nil
}

// validateTargetName rejects empty names and names containing the reference separator.
func validateTargetName(name string) error {
	if name == "" {
		return zerr.Wrap(domain.ErrInvalidTargetName, "target name is empty")
	}
	if strings.Contains(name, ":") {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidTargetName, "target name contains a colon"), "invalid_character", ":")
		return zerr.With(err, "target_name", name)
	}
	return nil
}
