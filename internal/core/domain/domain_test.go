package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shake/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("hello")
	is2 := domain.NewInternedString("hello")

	assert.Equal(t, is1, is2)
	assert.Equal(t, "hello", is1.String())
	assert.False(t, is1.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestTargetRef(t *testing.T) {
	ref := domain.NewTargetRef("Projects/App", "AppTests")
	assert.Equal(t, "Projects/App:AppTests", ref.String())
	assert.Equal(t, ref, domain.NewTargetRef("Projects/App", "AppTests"))

	t.Run("parse qualified", func(t *testing.T) {
		assert.Equal(t, ref, domain.ParseTargetRef("Projects/App:AppTests", "Other"))
	})

	t.Run("parse bare name", func(t *testing.T) {
		assert.Equal(t, ref, domain.ParseTargetRef("AppTests", "Projects/App"))
	})

	t.Run("compare", func(t *testing.T) {
		a := domain.NewTargetRef("A", "Z")
		b := domain.NewTargetRef("B", "A")
		assert.Negative(t, a.Compare(b))
		assert.Positive(t, b.Compare(a))
		assert.Zero(t, a.Compare(domain.NewTargetRef("A", "Z")))
	})
}

func TestContentHashes_Distinct(t *testing.T) {
	hashes := domain.ContentHashes{
		domain.NewTargetRef("App", "A"): "h2",
		domain.NewTargetRef("App", "B"): "h1",
		domain.NewTargetRef("App", "C"): "h2",
	}
	assert.Equal(t, []domain.ContentHash{"h1", "h2"}, hashes.Distinct())
	assert.Empty(t, domain.ContentHashes{}.Distinct())
}

func TestSideEffect_String(t *testing.T) {
	assert.Equal(t, "create file /tmp/h1", domain.FileEffect(domain.FileDescriptor{Path: "/tmp/h1"}).String())
	assert.Equal(t, "delete file /tmp/h1",
		domain.FileEffect(domain.FileDescriptor{Path: "/tmp/h1", State: domain.FileAbsent}).String())
	assert.Equal(t, "execute echo hello", domain.CommandEffect("echo", "hello").String())
}

func TestTestAction_Refs(t *testing.T) {
	var nilAction *domain.TestAction
	assert.Nil(t, nilAction.Refs())

	action := &domain.TestAction{Targets: []domain.TestableTarget{
		{Target: domain.NewTargetRef("App", "A")},
		{Target: domain.NewTargetRef("App", "B")},
	}}
	assert.Equal(t, []domain.TargetRef{domain.NewTargetRef("App", "A"), domain.NewTargetRef("App", "B")}, action.Refs())
}

func TestCacheConfig_Validate(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		config  domain.CacheConfig
		wantErr error
	}{
		{
			name:   "distinct roots",
			config: domain.CacheConfig{CacheRoot: filepath.Join(root, "cache"), StagingRoot: filepath.Join(root, "staging")},
		},
		{
			name:    "missing cache root",
			config:  domain.CacheConfig{StagingRoot: root},
			wantErr: domain.ErrMissingCacheRoot,
		},
		{
			name:    "missing staging root",
			config:  domain.CacheConfig{CacheRoot: root},
			wantErr: domain.ErrMissingStagingRoot,
		},
		{
			name:    "same root",
			config:  domain.CacheConfig{CacheRoot: root, StagingRoot: filepath.Join(root, ".", "")},
			wantErr: domain.ErrCacheRootsNotDistinct,
		},
		{
			name:    "staging root contains cache root",
			config:  domain.CacheConfig{CacheRoot: filepath.Join(root, ".shake", "cache", "tests"), StagingRoot: filepath.Join(root, ".shake")},
			wantErr: domain.ErrCacheRootsNotDistinct,
		},
		{
			name:    "staging root inside cache root",
			config:  domain.CacheConfig{CacheRoot: filepath.Join(root, "cache"), StagingRoot: filepath.Join(root, "cache", "staging")},
			wantErr: domain.ErrCacheRootsNotDistinct,
		},
		{
			name:    "relative staging root containing cache root",
			config:  domain.CacheConfig{CacheRoot: domain.DefaultCachePath(), StagingRoot: ".shake"},
			wantErr: domain.ErrCacheRootsNotDistinct,
		},
		{
			name:   "default layout",
			config: domain.CacheConfig{CacheRoot: domain.DefaultCachePath(), StagingRoot: domain.DefaultStagingPath("run-1")},
		},
		{
			name:   "sibling with a dotted name",
			config: domain.CacheConfig{CacheRoot: filepath.Join(root, "cache"), StagingRoot: filepath.Join(root, "..cache")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCacheConfig_StagedMarkerPath(t *testing.T) {
	cfg := domain.CacheConfig{CacheRoot: "cache", StagingRoot: "staging"}
	assert.Equal(t, filepath.Join("staging", "abc"), cfg.StagedMarkerPath("abc"))
}

func TestDefaultPaths(t *testing.T) {
	assert.Equal(t, filepath.Join(".shake", "cache", "tests"), domain.DefaultCachePath())
	assert.Equal(t, filepath.Join(".shake", "staging", "run-1"), domain.DefaultStagingPath("run-1"))
}

func TestSettings_WithDefaults(t *testing.T) {
	s := domain.Settings{}.WithDefaults("run-1")
	assert.Equal(t, domain.DefaultCachePath(), s.CacheRoot)
	assert.Equal(t, domain.DefaultStagingPath("run-1"), s.StagingRoot)
	assert.Equal(t, "workspace.yaml", s.Manifest)

	custom := domain.Settings{CacheRoot: "c", StagingRoot: "s", Manifest: "m.yaml"}.WithDefaults("run-1")
	assert.Equal(t, domain.CacheConfig{CacheRoot: "c", StagingRoot: "s"}, custom.CacheConfig())
	assert.Equal(t, "m.yaml", custom.Manifest)
}
