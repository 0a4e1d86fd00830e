// Package execute runs external processes and maps their failure modes to
// typed errors. It is the only place in the codebase that spawns children;
// everything above it works with argument vectors and results.
package execute

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Result holds the captured outcome of a successful invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Options control a single invocation. The zero value runs in the current
// directory with no timeout.
type Options struct {
	// Dir is the working directory for the child process.
	Dir string
	// Timeout bounds the process lifetime. Zero means no timeout.
	Timeout time.Duration
	// Outputs lists files the command is expected to produce. After a
	// zero-exit run each one must exist and be non-empty; ffmpeg has been
	// observed to exit 0 while leaving a truncated or empty output behind
	// on partial failures.
	Outputs []string
	// Tee, when set, receives the child's stderr in real time in addition
	// to the captured copy.
	Tee io.Writer
}

// Run spawns exactly one child process for argv and waits for it to exit.
// It never retries; callers decide retry policy. Failures are reported as
// *ExecutionError (non-zero exit), ErrTimeout (deadline elapsed),
// ErrNotFound (missing executable), or *EmptyOutputError (declared output
// missing or zero bytes despite exit 0).
func Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("execute: empty argument vector")
	}

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	// No stdin: the child must never block waiting for interactive input.
	cmd.Stdin = nil

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if opts.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, opts.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		return res, classify(runCtx, argv, res, err)
	}

	if err := verifyOutputs(opts.Outputs); err != nil {
		return res, err
	}
	return res, nil
}

// classify converts an exec failure into one of the package's typed errors.
// Timeout is checked first: a killed process surfaces as *exec.ExitError, so
// the context state is the only reliable signal.
func classify(ctx context.Context, argv []string, res Result, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Argv: argv}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExecutionError{
			Argv:     argv,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			ExitCode: exitErr.ExitCode(),
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &NotFoundError{Binary: argv[0]}
	}
	return err
}

// verifyOutputs checks that each declared output exists and is non-empty.
func verifyOutputs(paths []string) error {
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return &EmptyOutputError{Path: path, Missing: true}
		}
		if fi.Size() == 0 {
			return &EmptyOutputError{Path: path}
		}
	}
	return nil
}
