package domain

import (
	"fmt"
	"strings"
)

// FileState is the state a file descriptor asks for.
type FileState uint8

const (
	// FilePresent asks for the file to exist with the given contents.
	FilePresent FileState = iota
	// FileAbsent asks for the file to be removed. The test cache stage never plans removals;
	// the state is part of the descriptor model every pipeline stage shares.
	FileAbsent
)

// FileDescriptor describes a deferred file write or removal.
type FileDescriptor struct {
	Path     string
	Contents []byte
	State    FileState
}

// CommandDescriptor describes a deferred command invocation.
// The test cache stage only stages marker files; command descriptors exist for stages that
// need to run a tool once the whole pipeline succeeded, and the executor runs them through
// ports.CommandRunner.
type CommandDescriptor struct {
	Command []string
}

// SideEffect describes one deferred action. Exactly one of File or Command is set.
// It is the output type of every ports.GraphMapper, so it covers file writes, file
// removals and commands even though a single stage may only use part of it.
// Nothing in the core performs it; an executor does so after the whole pipeline succeeded.
type SideEffect struct {
	File    *FileDescriptor
	Command *CommandDescriptor
}

// FileEffect wraps a file descriptor.
func FileEffect(fd FileDescriptor) SideEffect {
	return SideEffect{File: &fd}
}

// CommandEffect wraps a command descriptor.
func CommandEffect(command ...string) SideEffect {
	return SideEffect{Command: &CommandDescriptor{Command: command}}
}

// String renders a human readable description of the effect.
func (e SideEffect) String() string {
	switch {
	case e.File != nil && e.File.State == FileAbsent:
		return "delete file " + e.File.Path
	case e.File != nil:
		return "create file " + e.File.Path
	case e.Command != nil:
		return "execute " + strings.Join(e.Command.Command, " ")
	default:
		return fmt.Sprintf("%#v", e)
	}
}
