package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shake/internal/adapters/cas"
	"go.trai.ch/shake/internal/adapters/sideeffect"
	"go.trai.ch/shake/internal/app"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// markerFixture runs the app against real marker directories under a fixed staging root.
type markerFixture struct {
	hasher      *mocks.MockContentHasher
	runner      *mocks.MockCommandRunner
	store       *cas.Store
	cacheRoot   string
	stagingRoot string
	app         *app.App
}

func newMarkerFixture(t *testing.T) *markerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	f := &markerFixture{
		hasher:      mocks.NewMockContentHasher(ctrl),
		runner:      mocks.NewMockCommandRunner(ctrl),
		store:       cas.NewStore(),
		cacheRoot:   filepath.Join(dir, "cache"),
		stagingRoot: filepath.Join(dir, "staging"),
	}

	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(domain.NewTarget(domain.NewTargetRef("Lib", "LibTests"), "unit_tests", nil, nil)))
	g.SetWorkspace(domain.Workspace{Schemes: []domain.Scheme{{
		Name: "Lib",
		TestAction: &domain.TestAction{Targets: []domain.TestableTarget{
			{Target: domain.NewTargetRef("Lib", "LibTests")},
		}},
	}}})

	settings := mocks.NewMockSettingsLoader(ctrl)
	settings.EXPECT().LoadSettings(gomock.Any()).
		Return(domain.Settings{CacheRoot: f.cacheRoot, StagingRoot: f.stagingRoot}, nil).AnyTimes()
	manifests := mocks.NewMockManifestLoader(ctrl)
	manifests.EXPECT().Load(gomock.Any()).Return(g, nil).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), vertex).AnyTimes()

	f.app = app.New(manifests, settings, f.hasher, f.store, sideeffect.NewExecutor(f.runner), f.runner, tel, log)
	return f
}

func (f *markerFixture) hashes(hash domain.ContentHash) *gomock.Call {
	return f.hasher.EXPECT().ContentHashes(gomock.Any(), gomock.Any()).
		Return(domain.ContentHashes{domain.NewTargetRef("Lib", "LibTests"): hash}, nil)
}

func TestApp_Test_FailedRunIsNeverPromoted(t *testing.T) {
	f := newMarkerFixture(t)
	ctx := context.Background()
	command := []string{"make", "test"}

	gomock.InOrder(
		f.hashes("v1"),
		f.runner.EXPECT().Run(ctx, command, gomock.Any(), nil, nil).Return(errors.New("exit status 3")),
		f.hashes("v2"),
		f.runner.EXPECT().Run(ctx, command, gomock.Any(), nil, nil).Return(nil),
		f.hashes("v1"),
	)

	// The failing run leaves its marker staged.
	_, err := f.app.Test(ctx, app.TestOptions{Command: command})
	require.ErrorIs(t, err, domain.ErrTestExecutionFailed)
	assert.FileExists(t, filepath.Join(f.stagingRoot, "v1"))

	// The next run reuses the staging root and passes.
	result, err := f.app.Test(ctx, app.TestOptions{Command: command})
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentHash{"v2"}, result.Staged)

	promoted, err := f.store.List(f.cacheRoot)
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentHash{"v2"}, promoted, "only the passing run's markers are promoted")
	assert.NoDirExists(t, f.stagingRoot)

	// Going back to the content that failed still schedules its tests.
	result, err = f.app.Map(ctx, app.MapOptions{DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, []domain.TargetRef{domain.NewTargetRef("Lib", "LibTests")}, result.Remaining)
}

func TestApp_Promote_WholeStagingRoot(t *testing.T) {
	f := newMarkerFixture(t)
	require.NoError(t, os.MkdirAll(f.stagingRoot, 0o750))
	for _, name := range []string{"h1", "h2"} {
		require.NoError(t, os.WriteFile(filepath.Join(f.stagingRoot, name), nil, 0o600))
	}

	require.NoError(t, f.app.Promote(context.Background(), app.PromoteOptions{StagingRoot: f.stagingRoot}))

	promoted, err := f.store.List(f.cacheRoot)
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentHash{"h1", "h2"}, promoted)
	assert.NoDirExists(t, f.stagingRoot)
}
