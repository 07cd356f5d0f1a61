package harness

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/renato0307/covrun/internal/adapters/process"
	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/ports"
	"github.com/renato0307/covrun/internal/services"
)

// BinaryVersion is stamped into the binary under test through -ldflags
const BinaryVersion = "integration"

const commandTimeout = 30 * time.Second

var binaryPath string

// CommandResult is one covrun invocation: what it was asked to do and the
// streams it left behind.
type CommandResult struct {
	ports.ProcessOutput
	Args []string
}

// String renders the invocation in the labeled stdout/stderr form used by
// harness diagnostics.
func (r CommandResult) String() string {
	return fmt.Sprintf("covrun %s (exit %d, timed out: %t)\n%s",
		strings.Join(r.Args, " "), r.ExitCode, r.TimedOut, domain.FormatOutput(r.Stdout, r.Stderr))
}

// Main builds covrun, runs the tests and removes the binary again.
// Call it from TestMain: os.Exit(harness.Main(m)).
func Main(m *testing.M) int {
	path, err := buildBinary(context.Background())
	if err != nil {
		log.Printf("Failed to build covrun: %v", err)
		return 1
	}
	binaryPath = path

	defer func() {
		if err := os.RemoveAll(filepath.Dir(path)); err != nil {
			log.Printf("Warning: failed to remove %s: %v", filepath.Dir(path), err)
		}
	}()
	return m.Run()
}

// BinaryPath returns the covrun binary built by Main
func BinaryPath() string {
	return binaryPath
}

func buildBinary(ctx context.Context) (string, error) {
	root, err := config.FindProjectRoot(ctx)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "covrun-integration-*")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, services.BinaryFileName("covrun"))

	cmd := exec.CommandContext(ctx, "go", "build",
		"-ldflags", "-X main.Version="+BinaryVersion,
		"-o", path,
		"./cmd",
	)
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("go build failed: %w\n%s", err, out)
	}
	return path, nil
}

// RunCommand runs covrun with args inside env's project root. It goes through
// the same process runner subjects do, so a hung command is killed with its
// whole process group after commandTimeout.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	out, err := process.NewOSRunner().Run(context.Background(), ports.ProcessSpec{
		Args:    append([]string{binaryPath}, args...),
		Dir:     env.ProjectRoot,
		Env:     env.Environ(),
		Timeout: commandTimeout,
	})
	if err != nil {
		tb.Fatalf("Failed to run covrun %v: %v", args, err)
	}

	result := CommandResult{Args: args, ProcessOutput: out}
	if out.TimedOut {
		tb.Logf("Command timed out after %v: %s", commandTimeout, result)
	}
	return result
}
