package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shake/internal/app"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const runID = "run-1"

type fixture struct {
	t         *testing.T
	manifests *mocks.MockManifestLoader
	settings  *mocks.MockSettingsLoader
	hasher    *mocks.MockContentHasher
	store     *mocks.MockMarkerStore
	effects   *mocks.MockSideEffectExecutor
	runner    *mocks.MockCommandRunner
	logger    *mocks.MockLogger
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		t:         t,
		manifests: mocks.NewMockManifestLoader(ctrl),
		settings:  mocks.NewMockSettingsLoader(ctrl),
		hasher:    mocks.NewMockContentHasher(ctrl),
		store:     mocks.NewMockMarkerStore(ctrl),
		effects:   mocks.NewMockSideEffectExecutor(ctrl),
		runner:    mocks.NewMockCommandRunner(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), vertex).AnyTimes()

	f.app = app.New(f.manifests, f.settings, f.hasher, f.store, f.effects, f.runner, tel, f.logger).
		WithRunID(func() string { return runID })
	return f
}

func ref(name string) domain.TargetRef {
	return domain.NewTargetRef("App", name)
}

// workspaceGraph builds Core, CoreTests -> Core and AppTests -> Core with one scheme
// testing CoreTests, AppTests and a target that no longer exists.
func workspaceGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(domain.NewTarget(ref("Core"), "framework", nil, nil)))
	require.NoError(t, g.AddTarget(domain.NewTarget(ref("CoreTests"), "unit_tests", nil, nil).DependsOn(ref("Core"))))
	require.NoError(t, g.AddTarget(domain.NewTarget(ref("AppTests"), "unit_tests", nil, nil).DependsOn(ref("Core"))))
	g.SetWorkspace(domain.Workspace{
		Name: "Demo",
		Schemes: []domain.Scheme{{
			Name: "Demo",
			TestAction: &domain.TestAction{Targets: []domain.TestableTarget{
				{Target: ref("CoreTests")},
				{Target: ref("AppTests")},
				{Target: ref("Gone")},
			}},
		}},
	})
	return g
}

var hashes = domain.ContentHashes{
	ref("Core"):      "h1",
	ref("CoreTests"): "h2",
	ref("AppTests"):  "h3",
}

// expectMapping sets up a pass where CoreTests is cache-valid and AppTests is not.
func (f *fixture) expectMapping(settings domain.Settings, cacheRoot string) {
	f.settings.EXPECT().LoadSettings(domain.SettingsFileName).Return(settings, nil)
	f.manifests.EXPECT().Load(domain.ManifestFileName).Return(workspaceGraph(f.t), nil)
	f.hasher.EXPECT().ContentHashes(gomock.Any(), gomock.Any()).Return(hashes, nil)
	f.store.EXPECT().Exists(cacheRoot, domain.ContentHash("h1")).Return(true, nil)
	f.store.EXPECT().Exists(cacheRoot, domain.ContentHash("h2")).Return(true, nil)
	f.store.EXPECT().Exists(cacheRoot, domain.ContentHash("h3")).Return(false, nil)
	f.logger.EXPECT().Warn("App:Gone is not a target of the workspace, ignoring")
	f.logger.EXPECT().Info("App:CoreTests has not changed from last successful run, skipping...")
}

func stagedEffects(stagingRoot string) []domain.SideEffect {
	var effects []domain.SideEffect
	for _, h := range []string{"h1", "h2", "h3"} {
		effects = append(effects, domain.FileEffect(domain.FileDescriptor{
			Path:  filepath.Join(stagingRoot, h),
			State: domain.FilePresent,
		}))
	}
	return effects
}

func TestApp_Map(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stagingRoot := domain.DefaultStagingPath(runID)

	f.expectMapping(domain.Settings{}, domain.DefaultCachePath())
	f.effects.EXPECT().Execute(ctx, stagedEffects(stagingRoot)).Return(nil)

	result, err := f.app.Map(ctx, app.MapOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.TargetRef{ref("CoreTests")}, result.Skipped)
	assert.Equal(t, []domain.TargetRef{ref("Gone")}, result.Unresolved)
	assert.Equal(t, []domain.TargetRef{ref("AppTests")}, result.Remaining)
	assert.Equal(t, domain.CacheConfig{CacheRoot: domain.DefaultCachePath(), StagingRoot: stagingRoot}, result.Config)
	assert.Equal(t, stagedEffects(stagingRoot), result.SideEffects)
	assert.Equal(t, []domain.ContentHash{"h1", "h2", "h3"}, result.Staged)

	scheme := result.Graph.Workspace().Schemes[0]
	assert.Equal(t, []domain.TestableTarget{{Target: ref("AppTests")}}, scheme.TestAction.Targets)
}

func TestApp_Map_FlagsOverrideSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.settings.EXPECT().LoadSettings("ci/shake.yaml").Return(domain.Settings{
		CacheRoot:   "/settings/cache",
		StagingRoot: "/settings/staging",
		Manifest:    "/settings/workspace.yaml",
	}, nil)
	f.manifests.EXPECT().Load("other.yaml").Return(domain.NewGraph(), nil)
	f.hasher.EXPECT().ContentHashes(gomock.Any(), gomock.Any()).Return(domain.ContentHashes{}, nil)

	result, err := f.app.Map(ctx, app.MapOptions{
		ConfigPath:   "ci/shake.yaml",
		ManifestPath: "other.yaml",
		CacheRoot:    "/flags/cache",
		DryRun:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CacheConfig{CacheRoot: "/flags/cache", StagingRoot: "/settings/staging"}, result.Config)
	assert.Empty(t, result.Remaining)
}

func TestApp_Map_DryRunStagesNothing(t *testing.T) {
	f := newFixture(t)

	f.expectMapping(domain.Settings{CacheRoot: "/cache"}, "/cache")

	result, err := f.app.Map(context.Background(), app.MapOptions{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, result.SideEffects, 3)
}

func TestApp_Map_Errors(t *testing.T) {
	t.Run("settings", func(t *testing.T) {
		f := newFixture(t)
		cause := zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml")
		f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{}, cause)

		_, err := f.app.Map(context.Background(), app.MapOptions{})
		assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
	})

	t.Run("manifest", func(t *testing.T) {
		f := newFixture(t)
		f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{}, nil)
		f.manifests.EXPECT().Load(gomock.Any()).Return(nil, zerr.Wrap(domain.ErrCycleDetected, "cycle"))

		_, err := f.app.Map(context.Background(), app.MapOptions{})
		assert.ErrorIs(t, err, domain.ErrCycleDetected)
	})

	t.Run("same roots", func(t *testing.T) {
		f := newFixture(t)
		f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{}, nil)
		f.manifests.EXPECT().Load(gomock.Any()).Return(domain.NewGraph(), nil)

		_, err := f.app.Map(context.Background(), app.MapOptions{CacheRoot: "/same", StagingRoot: "/same"})
		assert.ErrorIs(t, err, domain.ErrCacheRootsNotDistinct)
	})

	t.Run("hasher", func(t *testing.T) {
		f := newFixture(t)
		f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{}, nil)
		f.manifests.EXPECT().Load(gomock.Any()).Return(domain.NewGraph(), nil)
		f.hasher.EXPECT().ContentHashes(gomock.Any(), gomock.Any()).
			Return(nil, zerr.Wrap(domain.ErrHashComputationFailed, "unreadable"))

		_, err := f.app.Map(context.Background(), app.MapOptions{})
		assert.ErrorIs(t, err, domain.ErrHashComputationFailed)
	})

	t.Run("staging", func(t *testing.T) {
		f := newFixture(t)
		f.expectMapping(domain.Settings{}, domain.DefaultCachePath())
		f.effects.EXPECT().Execute(gomock.Any(), gomock.Any()).
			Return(zerr.Wrap(domain.ErrSideEffectFailed, "read-only"))

		_, err := f.app.Map(context.Background(), app.MapOptions{})
		assert.ErrorIs(t, err, domain.ErrSideEffectFailed)
	})
}

func TestApp_Test_PromotesOnSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()
	cacheRoot := filepath.Join(dir, "cache")
	stagingRoot := filepath.Join(dir, "staging")
	require.NoError(t, os.MkdirAll(stagingRoot, 0o750))

	f.expectMapping(domain.Settings{CacheRoot: cacheRoot, StagingRoot: stagingRoot}, cacheRoot)
	f.effects.EXPECT().Execute(ctx, stagedEffects(stagingRoot)).Return(nil)
	gomock.InOrder(
		f.runner.EXPECT().Run(ctx, []string{"make", "test"}, []string{"SHAKE_TEST_TARGETS=App:AppTests"}, nil, nil).
			Return(nil),
		f.store.EXPECT().Promote(stagingRoot, cacheRoot, []domain.ContentHash{"h1", "h2", "h3"}).
			Return([]domain.ContentHash{"h1", "h2", "h3"}, nil),
	)
	f.logger.EXPECT().Info("promoted 3 test markers")

	result, err := f.app.Test(ctx, app.TestOptions{Command: []string{"make", "test"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.TargetRef{ref("AppTests")}, result.Remaining)
	assert.NoDirExists(t, stagingRoot)
}

func TestApp_Test_FailureLeavesStaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()
	cacheRoot := filepath.Join(dir, "cache")
	stagingRoot := filepath.Join(dir, "staging")
	require.NoError(t, os.MkdirAll(stagingRoot, 0o750))

	cause := errors.New("exit status 65")
	f.expectMapping(domain.Settings{CacheRoot: cacheRoot, StagingRoot: stagingRoot}, cacheRoot)
	f.effects.EXPECT().Execute(ctx, gomock.Any()).Return(nil)
	f.runner.EXPECT().Run(ctx, []string{"make", "test"}, gomock.Any(), nil, nil).Return(cause)

	_, err := f.app.Test(ctx, app.TestOptions{Command: []string{"make", "test"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTestExecutionFailed)
	assert.ErrorIs(t, err, cause)
	assert.DirExists(t, stagingRoot)
}

func TestApp_Test_NothingToRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stagingRoot := filepath.Join(t.TempDir(), "staging")

	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(domain.NewTarget(ref("CoreTests"), "unit_tests", nil, nil)))
	g.SetWorkspace(domain.Workspace{Schemes: []domain.Scheme{{
		Name:       "Core",
		TestAction: &domain.TestAction{Targets: []domain.TestableTarget{{Target: ref("CoreTests")}}},
	}}})

	f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{CacheRoot: "/cache", StagingRoot: stagingRoot}, nil)
	f.manifests.EXPECT().Load(gomock.Any()).Return(g, nil)
	f.hasher.EXPECT().ContentHashes(gomock.Any(), g).Return(domain.ContentHashes{ref("CoreTests"): "h2"}, nil)
	f.store.EXPECT().Exists("/cache", domain.ContentHash("h2")).Return(true, nil)
	f.effects.EXPECT().Execute(ctx, gomock.Any()).Return(nil)
	f.store.EXPECT().Promote(stagingRoot, "/cache", []domain.ContentHash{"h2"}).Return(nil, nil)
	gomock.InOrder(
		f.logger.EXPECT().Info("App:CoreTests has not changed from last successful run, skipping..."),
		f.logger.EXPECT().Info("all test targets are cached, nothing to run"),
		f.logger.EXPECT().Info("promoted 0 test markers"),
	)

	result, err := f.app.Test(ctx, app.TestOptions{Command: []string{"make", "test"}})
	require.NoError(t, err)
	assert.Empty(t, result.Remaining)
}

func TestApp_Test_NoCommand(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Test(context.Background(), app.TestOptions{})
	assert.ErrorIs(t, err, domain.ErrNoTestCommand)
}

func TestApp_Promote(t *testing.T) {
	f := newFixture(t)
	stagingRoot := filepath.Join(t.TempDir(), "staging")

	f.settings.EXPECT().LoadSettings(domain.SettingsFileName).Return(domain.Settings{CacheRoot: "/cache"}, nil)
	f.store.EXPECT().List(stagingRoot).Return([]domain.ContentHash{"h1"}, nil)
	f.store.EXPECT().Promote(stagingRoot, "/cache", []domain.ContentHash{"h1"}).Return([]domain.ContentHash{"h1"}, nil)
	f.logger.EXPECT().Info("promoted 1 test markers")

	require.NoError(t, f.app.Promote(context.Background(), app.PromoteOptions{StagingRoot: stagingRoot}))
}

func TestApp_Promote_Errors(t *testing.T) {
	f := newFixture(t)

	err := f.app.Promote(context.Background(), app.PromoteOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingStagingRoot)

	f.settings.EXPECT().LoadSettings(gomock.Any()).Return(domain.Settings{}, nil).Times(3)
	f.store.EXPECT().List("/staging").Return([]domain.ContentHash{"h1"}, nil)
	f.store.EXPECT().Promote("/staging", domain.DefaultCachePath(), []domain.ContentHash{"h1"}).
		Return(nil, zerr.Wrap(domain.ErrPromotionFailed, "disk full"))

	err = f.app.Promote(context.Background(), app.PromoteOptions{StagingRoot: "/staging"})
	assert.ErrorIs(t, err, domain.ErrPromotionFailed)

	f.store.EXPECT().List("/unreadable").Return(nil, errors.New("permission denied"))
	err = f.app.Promote(context.Background(), app.PromoteOptions{StagingRoot: "/unreadable"})
	assert.ErrorIs(t, err, domain.ErrPromotionFailed)

	err = f.app.Promote(context.Background(), app.PromoteOptions{StagingRoot: ".shake"})
	assert.ErrorIs(t, err, domain.ErrCacheRootsNotDistinct)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	cacheRoot := filepath.Join(dir, "cache")
	stagingRoot := filepath.Join(dir, "staging")
	require.NoError(t, os.MkdirAll(cacheRoot, 0o750))
	require.NoError(t, os.MkdirAll(stagingRoot, 0o750))

	f.settings.EXPECT().LoadSettings(gomock.Any()).
		Return(domain.Settings{CacheRoot: cacheRoot, StagingRoot: stagingRoot}, nil).Times(2)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Staging: true}))
	assert.DirExists(t, cacheRoot)
	assert.NoDirExists(t, stagingRoot)

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Cache: true}))
	assert.NoDirExists(t, cacheRoot)
}
