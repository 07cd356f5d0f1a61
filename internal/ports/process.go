package ports

import (
	"context"
	"time"
)

// ProcessSpec describes a child process to launch
type ProcessSpec struct {
	Args    []string // Args[0] is the executable
	Dir     string
	Env     []string // Full environment; nil inherits the current one
	Timeout time.Duration
}

// ProcessOutput is what a finished (or killed) child process left behind
type ProcessOutput struct {
	Elapsed  time.Duration
	ExitCode int
	Stderr   string
	Stdout   string
	TimedOut bool
}

// ProcessRunner launches child processes and waits for them.
// A non-zero exit is reported through ExitCode, not as an error; the error
// is reserved for processes that could not be started at all.
type ProcessRunner interface {
	Run(ctx context.Context, spec ProcessSpec) (ProcessOutput, error)
}
