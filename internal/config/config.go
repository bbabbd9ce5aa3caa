package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWorkdir points at the repository root when the agent runs
	// from a subdirectory.
	DefaultWorkdir = ".."
	// DefaultTimeout bounds each external tool invocation.
	DefaultTimeout = 120 * time.Second
	// DefaultModel is used when GEMINI_MODEL is unset.
	DefaultModel = "gemini-2.5-flash"
)

// Config carries everything the gateway and pipelines need. It is built
// once at process start and passed by value; nothing reads the
// environment after Load returns.
type Config struct {
	// Workdir is the Terraform project directory all tools run against.
	Workdir string
	// Allowlist restricts which gateway tools may execute.
	// nil means every tool is allowed.
	Allowlist []string
	// Timeout is the per-invocation wall-clock bound for child processes.
	Timeout time.Duration
	// APIKey authenticates the Gemini client.
	APIKey string
	// Model is the Gemini model id.
	Model string
}

// Load reads the environment into a Config. It never fails: malformed
// values degrade to defaults.
func Load() Config {
	return Config{
		Workdir:   firstNonEmpty(strings.TrimSpace(os.Getenv("TERRAFORM_WORKDIR")), DefaultWorkdir),
		Allowlist: parseAllowlist(os.Getenv("TOOLS_ALLOWLIST")),
		Timeout:   parseTimeout(os.Getenv("TOOLS_TIMEOUT_SECONDS")),
		APIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:     firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), DefaultModel),
	}
}

// IsAllowed reports whether a gateway tool may run. A nil allowlist
// permits everything; otherwise the name must be an exact member.
func (c Config) IsAllowed(tool string) bool {
	if c.Allowlist == nil {
		return true
	}
	for _, t := range c.Allowlist {
		if t == tool {
			return true
		}
	}
	return false
}

// parseAllowlist keeps the nil/empty distinction: an unset variable means
// unrestricted, while a set variable with no usable entries denies all.
func parseAllowlist(raw string) []string {
	if raw == "" {
		return nil
	}
	out := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseTimeout(raw string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultTimeout
	}
	return time.Duration(n) * time.Second
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
