// Package app implements the application layer for shake.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/shake/internal/engine/pipeline"
	"go.trai.ch/shake/internal/engine/testcache"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	settings  ports.SettingsLoader
	hasher    ports.ContentHasher
	store     ports.MarkerStore
	effects   ports.SideEffectExecutor
	runner    ports.CommandRunner
	telemetry ports.Telemetry
	logger    ports.Logger
	newRunID  func() string
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	settings ports.SettingsLoader,
	hasher ports.ContentHasher,
	store ports.MarkerStore,
	effects ports.SideEffectExecutor,
	runner ports.CommandRunner,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		settings:  settings,
		hasher:    hasher,
		store:     store,
		effects:   effects,
		runner:    runner,
		telemetry: telemetry,
		logger:    log,
		newRunID:  uuid.NewString,
	}
}

// WithRunID replaces the generator naming the default staging root of a run.
func (a *App) WithRunID(fn func() string) *App {
	a.newRunID = fn
	return a
}

// MapOptions configuration for the Map method. Non-empty paths override the settings file.
type MapOptions struct {
	ConfigPath   string
	ManifestPath string
	CacheRoot    string
	StagingRoot  string
	// DryRun skips staging the markers of the run.
	DryRun bool
}

// MapResult is the outcome of a mapping pass.
type MapResult struct {
	Graph       *domain.Graph
	SideEffects []domain.SideEffect
	Skipped     []domain.TargetRef
	Unresolved  []domain.TargetRef
	// Remaining lists the test targets that still run, deduplicated, in scheme order.
	Remaining []domain.TargetRef
	// Staged lists the hashes whose markers this run stages under Config.StagingRoot.
	Staged []domain.ContentHash
	Config domain.CacheConfig
}

// Map loads the workspace, prunes cache-valid test targets and stages the markers of this run.
func (a *App) Map(ctx context.Context, opts MapOptions) (*MapResult, error) {
	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	settings = overrideSettings(settings, opts.ManifestPath, opts.CacheRoot, opts.StagingRoot).WithDefaults(a.newRunID())

	graph, err := a.manifests.Load(settings.Manifest)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	config := settings.CacheConfig()
	mapper, err := testcache.NewMapper(config, a.hasher, a.store)
	if err != nil {
		return nil, err
	}

	var report testcache.Report
	stages := pipeline.New(pipeline.MapperFunc(
		func(ctx context.Context, graph *domain.Graph) (*domain.Graph, []domain.SideEffect, error) {
			mapped, effects, r, err := mapper.MapWithReport(ctx, graph)
			report = r
			return mapped, effects, err
		},
	))

	mapped, effects, err := stages.Map(ctx, graph)
	if err != nil {
		return nil, err
	}

	for _, ref := range report.Unresolved {
		msg := fmt.Sprintf("%s is not a target of the workspace, ignoring", ref)
		a.logger.Warn(msg)
		_, v := a.telemetry.Record(ctx, ref.String())
		v.Log(domain.TargetStatusUnresolved, msg)
		v.Complete(nil)
	}

	for _, ref := range report.Skipped {
		msg := fmt.Sprintf("%s has not changed from last successful run, skipping...", ref)
		a.logger.Info(msg)
		_, v := a.telemetry.Record(ctx, ref.String())
		v.Log(domain.TargetStatusCached, msg)
		v.Cached()
		v.Complete(nil)
	}

	if !opts.DryRun {
		if err := a.effects.Execute(ctx, effects); err != nil {
			return nil, err
		}
	}

	return &MapResult{
		Graph:       mapped,
		SideEffects: effects,
		Skipped:     report.Skipped,
		Unresolved:  report.Unresolved,
		Remaining:   remainingTargets(mapped.Workspace()),
		Staged:      report.Staged,
		Config:      config,
	}, nil
}

// TestOptions configuration for the Test method.
type TestOptions struct {
	MapOptions
	// Command is the test command. It receives the remaining targets in SHAKE_TEST_TARGETS.
	Command []string
}

// Test maps the workspace, runs the test command for the remaining targets and promotes
// the markers staged by this run once the command succeeded. On failure nothing is
// promoted. Markers left in the staging root by earlier runs are never promoted here.
func (a *App) Test(ctx context.Context, opts TestOptions) (*MapResult, error) {
	if len(opts.Command) == 0 {
		return nil, domain.ErrNoTestCommand
	}

	opts.DryRun = false
	result, err := a.Map(ctx, opts.MapOptions)
	if err != nil {
		return nil, err
	}

	if len(result.Remaining) == 0 {
		a.logger.Info("all test targets are cached, nothing to run")
	} else if err := a.runTests(ctx, opts.Command, result.Remaining); err != nil {
		return result, zerr.With(errors.Join(domain.ErrTestExecutionFailed, err), "staging_root", result.Config.StagingRoot)
	}

	if err := a.promote(result.Config, result.Staged); err != nil {
		return result, err
	}
	return result, nil
}

func (a *App) runTests(ctx context.Context, command []string, targets []domain.TargetRef) error {
	names := make([]string, len(targets))
	vertices := make([]ports.Vertex, len(targets))
	for i, ref := range targets {
		names[i] = ref.String()
		_, vertices[i] = a.telemetry.Record(ctx, names[i])
		vertices[i].Log(domain.TargetStatusScheduled, "tests will run")
	}

	env := []string{domain.TestTargetsEnv + "=" + strings.Join(names, ",")}
	err := a.runner.Run(ctx, command, env, nil, nil)

	for _, v := range vertices {
		v.Complete(err)
	}
	return err
}

// PromoteOptions configuration for the Promote method.
type PromoteOptions struct {
	ConfigPath  string
	CacheRoot   string
	StagingRoot string
}

// Promote copies every marker staged under StagingRoot into the persistent cache root.
// It is meant to be called once the tests of that run are known to have passed, so the
// staging root must hold the markers of that run only.
func (a *App) Promote(_ context.Context, opts PromoteOptions) error {
	if opts.StagingRoot == "" {
		return domain.ErrMissingStagingRoot
	}

	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}
	settings = overrideSettings(settings, "", opts.CacheRoot, opts.StagingRoot).WithDefaults(a.newRunID())

	config := settings.CacheConfig()
	if err := config.Validate(); err != nil {
		return err
	}

	staged, err := a.store.List(config.StagingRoot)
	if err != nil {
		return errors.Join(domain.ErrPromotionFailed, err)
	}
	return a.promote(config, staged)
}

func (a *App) promote(config domain.CacheConfig, staged []domain.ContentHash) error {
	promoted, err := a.store.Promote(config.StagingRoot, config.CacheRoot, staged)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("promoted %d test markers", len(promoted)))

	if err := os.RemoveAll(config.StagingRoot); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove staging root"), "path", config.StagingRoot)
	}
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Cache      bool
	Staging    bool
}

// Clean removes the persistent cache root and/or the staging roots.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.Cache {
		cacheRoot := settings.CacheRoot
		if cacheRoot == "" {
			cacheRoot = domain.DefaultCachePath()
		}
		remove(cacheRoot, "test cache")
	}

	if opts.Staging {
		stagingRoot := settings.StagingRoot
		if stagingRoot == "" {
			stagingRoot = domain.DefaultStagingBase()
		}
		remove(stagingRoot, "staged markers")
	}

	return errs
}

func (a *App) loadSettings(path string) (domain.Settings, error) {
	if path == "" {
		path = domain.SettingsFileName
	}
	settings, err := a.settings.LoadSettings(path)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load settings")
	}
	return settings, nil
}

func overrideSettings(s domain.Settings, manifest, cacheRoot, stagingRoot string) domain.Settings {
	if manifest != "" {
		s.Manifest = manifest
	}
	if cacheRoot != "" {
		s.CacheRoot = cacheRoot
	}
	if stagingRoot != "" {
		s.StagingRoot = stagingRoot
	}
	return s
}

// remainingTargets collects the test targets that still run. Targets disabled in their
// scheme are left out.
func remainingTargets(ws domain.Workspace) []domain.TargetRef {
	var refs []domain.TargetRef
	seen := make(map[domain.TargetRef]struct{})
	for _, scheme := range ws.Schemes {
		if scheme.TestAction == nil {
			continue
		}
		for _, tt := range scheme.TestAction.Targets {
			if tt.Skipped {
				continue
			}
			if _, ok := seen[tt.Target]; ok {
				continue
			}
			seen[tt.Target] = struct{}{}
			refs = append(refs, tt.Target)
		}
	}
	return refs
}
