// Package sideeffect performs the deferred side effects planned by the mapper pipeline.
package sideeffect

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SideEffectExecutor = (*Executor)(nil)

// Executor writes and removes files and runs commands.
type Executor struct {
	runner ports.CommandRunner
}

// NewExecutor creates a new Executor that runs command effects with runner.
func NewExecutor(runner ports.CommandRunner) *Executor {
	return &Executor{runner: runner}
}

// Execute performs the effects in order and stops at the first failure.
func (e *Executor) Execute(ctx context.Context, effects []domain.SideEffect) error {
	for _, effect := range effects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.perform(ctx, effect); err != nil {
			return zerr.With(errors.Join(domain.ErrSideEffectFailed, err), "effect", effect.String())
		}
	}
	return nil
}

func (e *Executor) perform(ctx context.Context, effect domain.SideEffect) error {
	switch {
	case effect.File != nil && effect.File.State == domain.FileAbsent:
		return removeFile(effect.File.Path)
	case effect.File != nil:
		return writeFile(effect.File.Path, effect.File.Contents)
	case effect.Command != nil:
		return e.runner.Run(ctx, effect.Command.Command, nil, nil, nil)
	default:
		return zerr.New("empty side effect")
	}
}

func writeFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory")
	}
	if err := os.WriteFile(path, contents, domain.FilePerm); err != nil { //nolint:gosec // markers are not secret
		return zerr.Wrap(err, "failed to write file")
	}
	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, "failed to remove file")
	}
	return nil
}
