package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// DefaultToolTimeout bounds build, merge and covdata invocations
const DefaultToolTimeout = 10 * time.Minute

// ErrGoNotInstalled is returned when no go binary is on PATH
var ErrGoNotInstalled = errors.New("go is not installed, please install Go and try again")

// GoToolchain implements ports.Toolchain with the go command
type GoToolchain struct {
	goBin   string
	lookErr error
	lookup  sync.Once
	root    string
	runner  ports.ProcessRunner
	timeout time.Duration
}

// Compile-time interface verification
var _ ports.Toolchain = (*GoToolchain)(nil)

// NewGoToolchain runs go commands from the project root through runner.
// The go binary is looked up lazily on first use.
func NewGoToolchain(root string, runner ports.ProcessRunner) *GoToolchain {
	return &GoToolchain{
		root:    root,
		runner:  runner,
		timeout: DefaultToolTimeout,
	}
}

// WithGoBinary pins the go binary instead of searching PATH
func (g *GoToolchain) WithGoBinary(path string) *GoToolchain {
	g.goBin = path
	g.lookup.Do(func() {})
	return g
}

// RequireGo returns the go binary path
func (g *GoToolchain) RequireGo() (string, error) {
	g.lookup.Do(func() {
		path, err := exec.LookPath("go")
		if err != nil {
			g.lookErr = ErrGoNotInstalled
			return
		}
		g.goBin = path
	})
	return g.goBin, g.lookErr
}

// BuildArgs returns the go build arguments (after the go binary) for spec
func BuildArgs(spec domain.BuildSpec, output string) []string {
	args := []string{"build"}
	args = append(args, spec.Flags()...)
	args = append(args, "-o", output, spec.Package)
	return args
}

// Build compiles spec.Package into output
func (g *GoToolchain) Build(ctx context.Context, spec domain.BuildSpec, output string) error {
	args := BuildArgs(spec, output)
	logging.Logger.Info("Building subject", "mode", spec.Mode, "package", spec.Package, "output", output)

	out, err := g.run(ctx, args)
	if err != nil {
		return &domain.HarnessError{Args: args, Err: err, Kind: domain.ErrBuildFailure, Op: "build"}
	}
	if out.TimedOut {
		return &domain.HarnessError{
			Args:   args,
			Err:    domain.ErrTimeout,
			Kind:   domain.ErrBuildFailure,
			Op:     "build",
			Output: domain.FormatOutput(out.Stdout, out.Stderr),
		}
	}
	if out.ExitCode != 0 {
		return &domain.HarnessError{
			Args:   args,
			Err:    fmt.Errorf("go build exited with status %d", out.ExitCode),
			Kind:   domain.ErrBuildFailure,
			Op:     "build",
			Output: domain.FormatOutput(out.Stdout, out.Stderr),
		}
	}

	logging.Logger.Info("Built subject", "output", output, "elapsed", out.Elapsed)
	return nil
}

// MergeProfiles runs go tool pprof -proto over paths and returns the merged profile
func (g *GoToolchain) MergeProfiles(ctx context.Context, paths []string) ([]byte, error) {
	args := append([]string{"tool", "pprof", "-proto"}, paths...)

	out, err := g.run(ctx, args)
	if err != nil {
		return nil, &domain.HarnessError{Args: args, Err: err, Kind: domain.ErrMergeFailure, Op: "merge profiles"}
	}
	if out.TimedOut || out.ExitCode != 0 {
		cause := fmt.Errorf("go tool pprof exited with status %d", out.ExitCode)
		if out.TimedOut {
			cause = domain.ErrTimeout
		}
		return nil, &domain.HarnessError{
			Args:   args,
			Err:    cause,
			Kind:   domain.ErrMergeFailure,
			Op:     "merge profiles",
			Output: domain.FormatOutput("", out.Stderr),
		}
	}

	return []byte(out.Stdout), nil
}

// CoverageText converts binary coverage data in dirs into a text profile
func (g *GoToolchain) CoverageText(ctx context.Context, dirs []string, output string) error {
	args := []string{"tool", "covdata", "textfmt", "-i=" + strings.Join(dirs, ","), "-o", output}

	out, err := g.run(ctx, args)
	if err != nil {
		return &domain.HarnessError{Args: args, Err: err, Kind: domain.ErrMergeFailure, Op: "coverage textfmt"}
	}
	if out.TimedOut || out.ExitCode != 0 {
		return &domain.HarnessError{
			Args:   args,
			Err:    fmt.Errorf("go tool covdata exited with status %d", out.ExitCode),
			Kind:   domain.ErrMergeFailure,
			Op:     "coverage textfmt",
			Output: domain.FormatOutput(out.Stdout, out.Stderr),
		}
	}
	return nil
}

func (g *GoToolchain) run(ctx context.Context, args []string) (ports.ProcessOutput, error) {
	goBin, err := g.RequireGo()
	if err != nil {
		return ports.ProcessOutput{}, err
	}
	return g.runner.Run(ctx, ports.ProcessSpec{
		Args:    append([]string{goBin}, args...),
		Dir:     g.root,
		Timeout: g.timeout,
	})
}
