package domain

import (
	"strings"
	"time"
)

// DefaultRunTimeout bounds a single subject execution
const DefaultRunTimeout = 120 * time.Second

// Environment variables understood by the subject binary
const (
	EnvCoverDir  = "GOCOVERDIR"
	EnvOutputDir = "OUTPUT_DIR"
)

// RunOutcome classifies a finished run
type RunOutcome string

const (
	OutcomeCancelled         RunOutcome = "cancelled"
	OutcomeOK                RunOutcome = "ok"
	OutcomeRunFailure        RunOutcome = "run_failure"
	OutcomeTimeout           RunOutcome = "timeout"
	OutcomeValidationFailure RunOutcome = "validation_failure"
)

// RunRequest describes one subject invocation
type RunRequest struct {
	Args        []string
	Binary      string
	Dir         string            // Working directory, defaults to the project root
	Env         map[string]string // Extra overrides on top of the inherited environment
	Name        string            // Human readable name used in diagnostics
	ProfilerDir string            // Exported as OUTPUT_DIR when set
	Timeout     time.Duration     // Zero means DefaultRunTimeout
}

// EffectiveTimeout returns the request timeout or the default
func (r RunRequest) EffectiveTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultRunTimeout
	}
	return r.Timeout
}

// RunResult is the outcome of one subprocess execution
type RunResult struct {
	Args        []string
	CoverDir    string
	Elapsed     time.Duration
	ExitCode    int
	Name        string
	Outcome     RunOutcome
	Output      string // Labeled stdout/stderr, see FormatOutput
	ProfilerDir string
	Stderr      string
	Stdout      string
}

// FormatOutput joins captured streams into the labeled diagnostic form,
// emitting only the non-empty sections.
func FormatOutput(stdout, stderr string) string {
	var b strings.Builder
	if len(stdout) > 0 {
		b.WriteString("stdout:\n")
		b.WriteString(stdout)
	}
	if len(stderr) > 0 {
		b.WriteString("\nstderr:\n")
		b.WriteString(stderr)
	}
	return b.String()
}
