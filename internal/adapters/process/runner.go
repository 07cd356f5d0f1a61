package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// waitDelay bounds how long Wait keeps reading pipes after the child exits
// or is killed; orphaned grandchildren may still hold them open.
const waitDelay = 5 * time.Second

// OSRunner implements ProcessRunner with os/exec. Every child runs in its own
// process group so a timeout kills the whole tree.
type OSRunner struct{}

// Compile-time interface verification
var _ ports.ProcessRunner = (*OSRunner)(nil)

// NewOSRunner creates a new OS process runner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run starts spec and waits for it to finish or time out
func (r *OSRunner) Run(ctx context.Context, spec ports.ProcessSpec) (ports.ProcessOutput, error) {
	if len(spec.Args) == 0 {
		return ports.ProcessOutput{}, errors.New("empty command")
	}

	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Logger.Debug("Starting process", "args", spec.Args, "dir", spec.Dir, "timeout", spec.Timeout)

	start := time.Now()
	err := cmd.Run()
	out := ports.ProcessOutput{
		Elapsed: time.Since(start),
		Stderr:  stderr.String(),
		Stdout:  stdout.String(),
	}

	// The deadline check comes first: a killed process also reports a
	// non-zero status, which must not be mistaken for a regular failure.
	if ctxErr := runCtx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			logging.Logger.Warn("Process timed out", "args", spec.Args, "timeout", spec.Timeout)
			out.ExitCode = -1
			out.TimedOut = true
			return out, nil
		}
		return out, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrWaitDelay):
		// Exited, but something kept its output pipes open
		out.ExitCode = cmd.ProcessState.ExitCode()
	default:
		return out, fmt.Errorf("failed to run %s: %w", spec.Args[0], err)
	}

	logging.Logger.Debug("Process finished", "args", spec.Args, "exit_code", out.ExitCode, "elapsed", out.Elapsed)
	return out, nil
}
