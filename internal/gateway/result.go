package gateway

// FailureKind tags why an operation could not produce a normal tool exit.
type FailureKind string

const (
	FailPolicyDenied  FailureKind = "policy_denied"
	FailBinaryMissing FailureKind = "binary_missing"
	FailDisallowed    FailureKind = "disallowed_operation"
	FailTimedOut      FailureKind = "timed_out"
	FailIO            FailureKind = "io_failure"
)

// Result is the single outcome type for every gateway operation. OK=false
// is an ordinary value, not an error: pipelines fold the failure text into
// their evidence and keep going.
type Result struct {
	OK       bool              `json:"ok"`
	Kind     FailureKind       `json:"kind,omitempty"`
	Err      string            `json:"error,omitempty"`
	Tool     string            `json:"tool,omitempty"`
	ExitCode int               `json:"exit_code"`
	Stdout   string            `json:"stdout,omitempty"`
	Stderr   string            `json:"stderr,omitempty"`
	Files    map[string]string `json:"files,omitempty"`
	Path     string            `json:"path,omitempty"`
}

func failure(kind FailureKind, msg string) Result {
	return Result{OK: false, Kind: kind, Err: msg}
}

// Text returns stdout when the tool produced any, otherwise the failure
// text. This is the form pipelines feed to the model.
func (r Result) Text() string {
	if r.Stdout != "" {
		return r.Stdout
	}
	return r.Err
}
