package ports

import (
	"context"
	"io"
)

// CommandRunner runs external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes command with the process environment extended by env ("KEY=VALUE").
	// Output is streamed to stdout and stderr. It returns an error if the command fails.
	Run(ctx context.Context, command []string, env []string, stdout, stderr io.Writer) error
}
