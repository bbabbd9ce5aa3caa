package gateway

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar"

	"tfagent/internal/config"
	"tfagent/internal/runner"
	"tfagent/internal/safeio"
)

// Tool names as they appear in the allowlist.
const (
	ToolTerraform    = "run_terraform"
	ToolSecurityScan = "run_security_scan"
	ToolInfracost    = "run_infracost"
	ToolReadFiles    = "read_repo_files"
	ToolWriteReport  = "write_report"
)

const (
	maxFileBytes = 1_000_000
	reportName   = "report.md"
)

// Injectable in tests.
var (
	runCommand = runner.Run
	lookPath   = exec.LookPath
)

// Gateway executes the allowlisted external tools against one workdir.
// Every operation checks the allowlist before touching the filesystem or
// spawning a process, and returns a Result instead of an error.
type Gateway struct {
	cfg config.Config
}

func New(cfg config.Config) *Gateway { return &Gateway{cfg: cfg} }

func (g *Gateway) workdir() string {
	abs, err := filepath.Abs(g.cfg.Workdir)
	if err != nil {
		return g.cfg.Workdir
	}
	return abs
}

// run spawns argv in the workdir and maps the outcome onto a Result.
// okCodes lists the exit codes that count as a completed run.
func (g *Gateway) run(ctx context.Context, argv []string, tool string, okCodes ...int) Result {
	res, err := runCommand(ctx, argv, g.workdir(), g.cfg.Timeout)
	if err != nil {
		var te *runner.TimeoutError
		if errors.As(err, &te) {
			return failure(FailTimedOut, err.Error())
		}
		return failure(FailIO, err.Error())
	}
	ok := false
	for _, c := range okCodes {
		if res.ExitCode == c {
			ok = true
			break
		}
	}
	return Result{
		OK:       ok,
		Tool:     tool,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
}

// RunTerraform executes one of the closed terraform subcommands in the
// workdir. Result.OK mirrors a zero exit.
func (g *Gateway) RunTerraform(ctx context.Context, cmd TerraformCommand) Result {
	if !g.cfg.IsAllowed(ToolTerraform) {
		return failure(FailPolicyDenied, "Tool not allowed: "+ToolTerraform)
	}
	if cmd == nil {
		return failure(FailDisallowed, "Disallowed terraform subcommand")
	}
	if _, err := lookPath("terraform"); err != nil {
		return failure(FailBinaryMissing, "Binary not found on PATH: terraform")
	}
	argv := append([]string{"terraform"}, cmd.argv()...)
	return g.run(ctx, argv, cmd.name(), 0)
}

// scannerProbes is the fallback order for security scanners. Exactly one
// is invoked: the first whose binary resolves on PATH. Exit code 1 means
// "issues found" for both tools and still counts as a completed scan.
var scannerProbes = []struct {
	binary string
	args   []string
}{
	{"tfsec", []string{"--format", "json", "--no-color", "."}},
	{"checkov", []string{"-d", ".", "--output", "json"}},
}

// RunSecurityScan runs the first available scanner against the workdir.
func (g *Gateway) RunSecurityScan(ctx context.Context) Result {
	if !g.cfg.IsAllowed(ToolSecurityScan) {
		return failure(FailPolicyDenied, "Tool not allowed: "+ToolSecurityScan)
	}
	for _, p := range scannerProbes {
		if _, err := lookPath(p.binary); err != nil {
			continue
		}
		return g.run(ctx, append([]string{p.binary}, p.args...), p.binary, 0, 1)
	}
	return failure(FailBinaryMissing, "no scanner found on PATH (tried tfsec, checkov)")
}

// RunInfracost runs an infracost breakdown for the workdir. Unlike the
// scanners, only a zero exit counts as success.
func (g *Gateway) RunInfracost(ctx context.Context) Result {
	if !g.cfg.IsAllowed(ToolInfracost) {
		return failure(FailPolicyDenied, "Tool not allowed: "+ToolInfracost)
	}
	if _, err := lookPath("infracost"); err != nil {
		return failure(FailBinaryMissing, "Binary not found on PATH: infracost")
	}
	argv := []string{"infracost", "breakdown", "--path", ".", "--format", "json", "--no-color"}
	return g.run(ctx, argv, "infracost", 0)
}

// ReadRepoFiles expands each glob pattern against the workdir and returns
// matched file contents keyed by workdir-relative path. Directories, files
// over maxFileBytes and non-UTF-8 files are skipped; per-file errors never
// abort the batch.
func (g *Gateway) ReadRepoFiles(patterns []string) Result {
	if !g.cfg.IsAllowed(ToolReadFiles) {
		return failure(FailPolicyDenied, "Tool not allowed: "+ToolReadFiles)
	}
	root := g.workdir()
	files := map[string]string{}
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(filepath.Join(root, pattern))
		if err != nil {
			return failure(FailIO, err.Error())
		}
		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() || info.Size() > maxFileBytes {
				continue
			}
			b, err := os.ReadFile(path)
			if err != nil || !utf8.Valid(b) {
				continue
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			files[filepath.ToSlash(rel)] = string(b)
		}
	}
	return Result{OK: true, Files: files}
}

// WriteReport writes markdown to report.md in the workdir, overwriting any
// existing report. Returns the absolute path written.
func (g *Gateway) WriteReport(markdown string) Result {
	if !g.cfg.IsAllowed(ToolWriteReport) {
		return failure(FailPolicyDenied, "Tool not allowed: "+ToolWriteReport)
	}
	dir, err := safeio.NewDir(g.workdir())
	if err != nil {
		return failure(FailIO, err.Error())
	}
	p, err := dir.WriteFile(reportName, []byte(markdown))
	if err != nil {
		return failure(FailIO, err.Error())
	}
	return Result{OK: true, Path: p}
}
