package execute

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks across the typed errors below.
var (
	ErrTimeout  = errors.New("process timed out")
	ErrNotFound = errors.New("executable not found")
)

// ExecutionError reports a child process that exited non-zero. It carries the
// full argument vector and both output streams so callers can log or classify
// the failure without re-running anything.
type ExecutionError struct {
	Argv     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = "<no stderr output>"
	}
	return fmt.Sprintf("command failed (exit %d): %s: %s", e.ExitCode, strings.Join(e.Argv, " "), detail)
}

// TimeoutError reports a process killed because its deadline elapsed.
type TimeoutError struct {
	Argv []string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out: %s", strings.Join(e.Argv, " "))
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// NotFoundError reports a binary that could not be found on PATH.
type NotFoundError struct {
	Binary string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found on PATH", e.Binary)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// EmptyOutputError reports a declared output file that is missing or zero
// bytes after a zero-exit run.
type EmptyOutputError struct {
	Path    string
	Missing bool
}

func (e *EmptyOutputError) Error() string {
	if e.Missing {
		return fmt.Sprintf("expected output file missing: %s", e.Path)
	}
	return fmt.Sprintf("output file is empty: %s", e.Path)
}
