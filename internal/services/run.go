package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// RunService executes the subject binary with coverage and profiler wiring
type RunService struct {
	coverDir string
	environ  func() []string
	root     string
	runner   ports.ProcessRunner
}

// NewRunService creates a new RunService. Every run writes coverage counters
// to coverDir and runs from root.
func NewRunService(runner ports.ProcessRunner, root, coverDir string) *RunService {
	return &RunService{
		coverDir: coverDir,
		environ:  os.Environ,
		root:     root,
		runner:   runner,
	}
}

// WithEnviron replaces the inherited environment, mostly for tests
func (s *RunService) WithEnviron(environ func() []string) *RunService {
	s.environ = environ
	return s
}

// Execute runs req.Binary with req.Args and classifies the outcome.
// A killed run is a Timeout, never a RunFailure.
func (s *RunService) Execute(ctx context.Context, req domain.RunRequest) (domain.RunResult, error) {
	args := append([]string{req.Binary}, req.Args...)
	name := req.Name
	if name == "" {
		name = req.Binary
	}
	op := "run " + name

	result := domain.RunResult{
		Args:        args,
		CoverDir:    s.coverDir,
		Name:        name,
		ProfilerDir: req.ProfilerDir,
	}

	if req.ProfilerDir != "" {
		if err := os.MkdirAll(req.ProfilerDir, 0755); err != nil {
			result.Outcome = domain.OutcomeRunFailure
			return result, &domain.HarnessError{Args: args, Err: err, Kind: domain.ErrRunFailure, Op: op}
		}
	}

	dir := req.Dir
	if dir == "" {
		dir = s.root
	}

	logging.Logger.Info("Running subject", "name", name, "args", args, "timeout", req.EffectiveTimeout())
	out, err := s.runner.Run(ctx, ports.ProcessSpec{
		Args:    args,
		Dir:     dir,
		Env:     s.buildEnv(req),
		Timeout: req.EffectiveTimeout(),
	})
	if errors.Is(err, context.Canceled) {
		result.Elapsed = out.Elapsed
		result.Outcome = domain.OutcomeCancelled
		logging.Logger.Warn("Subject run cancelled", "name", name, "args", args)
		return result, fmt.Errorf("%s: cancelled: %w", op, err)
	}
	if err != nil {
		result.Outcome = domain.OutcomeRunFailure
		logging.Logger.Error("Failed to start subject", "name", name, "error", err)
		return result, &domain.HarnessError{Args: args, Err: err, Kind: domain.ErrRunFailure, Op: op}
	}

	result.Elapsed = out.Elapsed
	result.ExitCode = out.ExitCode
	result.Stderr = out.Stderr
	result.Stdout = out.Stdout
	result.Output = domain.FormatOutput(out.Stdout, out.Stderr)

	switch {
	case out.TimedOut:
		result.Outcome = domain.OutcomeTimeout
		logging.Logger.Error("Subject timed out", "name", name, "args", args, "timeout", req.EffectiveTimeout())
		return result, &domain.HarnessError{
			Args:   args,
			Err:    fmt.Errorf("killed after %s", req.EffectiveTimeout()),
			Kind:   domain.ErrTimeout,
			Op:     op,
			Output: result.Output,
		}

	case out.ExitCode != 0:
		result.Outcome = domain.OutcomeRunFailure
		logging.Logger.Error("Subject failed", "name", name, "args", args, "exit_code", out.ExitCode, "output", result.Output)
		return result, &domain.HarnessError{
			Args:   args,
			Err:    fmt.Errorf("exit status %d", out.ExitCode),
			Kind:   domain.ErrRunFailure,
			Op:     op,
			Output: result.Output,
		}
	}

	result.Outcome = domain.OutcomeOK
	logging.Logger.Debug("Subject finished", "name", name, "elapsed", out.Elapsed)
	return result, nil
}

// buildEnv returns the inherited environment without the keys the run
// overrides, followed by the overrides in key order.
func (s *RunService) buildEnv(req domain.RunRequest) []string {
	overrides := make(map[string]string, len(req.Env)+2)
	for k, v := range req.Env {
		overrides[k] = v
	}
	overrides[domain.EnvCoverDir] = s.coverDir
	if req.ProfilerDir != "" {
		overrides[domain.EnvOutputDir] = req.ProfilerDir
	}

	var env []string
	for _, e := range s.environ() {
		key, _, _ := strings.Cut(e, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		env = append(env, e)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
