package runner

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires posix shell tools")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	skipOnWindows(t)
	res, err := Run(context.Background(), []string{"sh", "-c", "echo out; echo err 1>&2"}, t.TempDir(), 10*time.Second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit=%d want 0", res.ExitCode)
	}
	if res.Stdout != "out\n" {
		t.Fatalf("stdout=%q", res.Stdout)
	}
	if res.Stderr != "err\n" {
		t.Fatalf("stderr=%q", res.Stderr)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)
	res, err := Run(context.Background(), []string{"sh", "-c", "exit 3"}, t.TempDir(), 10*time.Second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit=%d want 3", res.ExitCode)
	}
}

func TestRunTimeoutKillsChild(t *testing.T) {
	skipOnWindows(t)
	start := time.Now()
	_, err := Run(context.Background(), []string{"sleep", "10"}, t.TempDir(), time.Second)
	elapsed := time.Since(start)

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("err=%v want TimeoutError", err)
	}
	if !strings.Contains(te.Error(), "sleep 10") {
		t.Fatalf("timeout error must name the argv: %q", te.Error())
	}
	// Should return close to the bound, not wait for the child.
	if elapsed > 5*time.Second {
		t.Fatalf("run took %v, child was not killed", elapsed)
	}
}

func TestRunEmptyArgv(t *testing.T) {
	if _, err := Run(context.Background(), nil, t.TempDir(), time.Second); err == nil {
		t.Fatal("empty argv must fail")
	}
}

func TestRunMissingBinary(t *testing.T) {
	if _, err := Run(context.Background(), []string{"definitely-not-a-binary-xyz"}, t.TempDir(), time.Second); err == nil {
		t.Fatal("missing binary must fail")
	}
}
