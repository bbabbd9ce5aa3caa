package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result is the raw outcome of one child process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// TimeoutError reports a child that exceeded its wall-clock bound and was
// killed.
type TimeoutError struct {
	Argv []string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out: %s", strings.Join(e.Argv, " "))
}

// Run executes argv in cwd with a hard wall-clock bound. The argv slice is
// handed to the OS verbatim; nothing is ever routed through a shell, since
// elements may originate from model output or file content. On timeout the
// child is killed, not abandoned.
func Run(ctx context.Context, argv []string, cwd string, timeout time.Duration) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("runner: empty argv")
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)
	cmd.Dir = cwd
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cctx.Err() == context.DeadlineExceeded {
		return Result{}, &TimeoutError{Argv: argv}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return Result{}, err
	}
	return Result{ExitCode: 0, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}
