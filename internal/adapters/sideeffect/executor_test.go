package sideeffect_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shake/internal/adapters/sideeffect"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestExecute_FileEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := sideeffect.NewExecutor(mocks.NewMockCommandRunner(ctrl))

	dir := t.TempDir()
	marker := filepath.Join(dir, "staging", "0123456789abcdef")
	stale := filepath.Join(dir, "stale")
	require.NoError(t, os.WriteFile(stale, nil, 0o600))

	err := exec.Execute(context.Background(), []domain.SideEffect{
		domain.FileEffect(domain.FileDescriptor{Path: marker, State: domain.FilePresent}),
		domain.FileEffect(domain.FileDescriptor{Path: filepath.Join(dir, "notes"), Contents: []byte("ok")}),
		domain.FileEffect(domain.FileDescriptor{Path: stale, State: domain.FileAbsent}),
		domain.FileEffect(domain.FileDescriptor{Path: filepath.Join(dir, "never-existed"), State: domain.FileAbsent}),
	})
	require.NoError(t, err)

	info, err := os.Stat(marker)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	data, err := os.ReadFile(filepath.Join(dir, "notes"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))

	assert.NoFileExists(t, stale)
}

func TestExecute_CommandEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	exec := sideeffect.NewExecutor(runner)
	ctx := context.Background()

	runner.EXPECT().Run(ctx, []string{"touch", "done"}, nil, nil, nil).Return(nil)

	require.NoError(t, exec.Execute(ctx, []domain.SideEffect{domain.CommandEffect("touch", "done")}))
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	exec := sideeffect.NewExecutor(runner)
	ctx := context.Background()

	cause := errors.New("exit status 1")
	runner.EXPECT().Run(ctx, []string{"false"}, nil, nil, nil).Return(cause)

	after := filepath.Join(t.TempDir(), "after")
	err := exec.Execute(ctx, []domain.SideEffect{
		domain.CommandEffect("false"),
		domain.FileEffect(domain.FileDescriptor{Path: after}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSideEffectFailed)
	assert.ErrorIs(t, err, cause)
	assert.NoFileExists(t, after)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "execute false", zErr.Metadata()["effect"])
}

func TestExecute_FileWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := sideeffect.NewExecutor(mocks.NewMockCommandRunner(ctrl))

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := exec.Execute(context.Background(), []domain.SideEffect{
		domain.FileEffect(domain.FileDescriptor{Path: filepath.Join(blocker, "marker")}),
	})
	assert.ErrorIs(t, err, domain.ErrSideEffectFailed)
}

func TestExecute_EmptyEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := sideeffect.NewExecutor(mocks.NewMockCommandRunner(ctrl))

	err := exec.Execute(context.Background(), []domain.SideEffect{{}})
	assert.ErrorIs(t, err, domain.ErrSideEffectFailed)
}

func TestExecute_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := sideeffect.NewExecutor(mocks.NewMockCommandRunner(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "marker")
	err := exec.Execute(ctx, []domain.SideEffect{domain.FileEffect(domain.FileDescriptor{Path: path})})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}
