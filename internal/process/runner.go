// Package process runs external commands synchronously and captures what
// they print.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/sys/execabs"
)

// ErrNotRunnable is returned when a command could not be started at all,
// for example because no program by that name exists.
var ErrNotRunnable = errors.New("command could not be started")

// Result is what a finished command produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Output returns stdout, or stderr when stdout is empty.
func (r Result) Output() []byte {
	if len(r.Stdout) > 0 {
		return r.Stdout
	}
	return r.Stderr
}

// Runner runs one command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// ExecRunner runs programs found on PATH. The child gets no stdin and its
// stdout and stderr are captured separately.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

// NewExecRunner creates an ExecRunner in the current working directory.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args and waits for it. A non-zero exit status is not
// an error; failing to start is, and wraps ErrNotRunnable.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (Result, error) {
	var stdout, stderr bytes.Buffer

	// execabs refuses programs that PATH lookup resolved to a relative path.
	cmd := execabs.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, fmt.Errorf("%w: %s: %w", ErrNotRunnable, name, err)
	}

	return res, nil
}
