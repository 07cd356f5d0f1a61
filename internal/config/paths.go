package config

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/renato0307/covrun/internal/domain"
)

// Paths resolves the fixed filesystem layout below the project root
type Paths struct {
	Root string
}

// NewPaths returns the layout rooted at root
func NewPaths(root string) Paths {
	return Paths{Root: root}
}

// CovdataIntegrationDir receives coverage counters from integration runs
func (p Paths) CovdataIntegrationDir() string {
	return filepath.Join(p.Root, "covdata", "integration")
}

// CovdataUnitDir receives coverage counters from unit tests
func (p Paths) CovdataUnitDir() string {
	return filepath.Join(p.Root, "covdata", "unit")
}

// CovdataDirs returns every coverage root cleared at session start
func (p Paths) CovdataDirs() []string {
	return []string{p.CovdataIntegrationDir(), p.CovdataUnitDir()}
}

// CoverageProfilePath is the text coverage profile produced by a summary
func (p Paths) CoverageProfilePath() string {
	return filepath.Join(p.Root, "covdata", "coverage.out")
}

// SessionLockPath guards the shared coverage sink for the session's lifetime
func (p Paths) SessionLockPath() string {
	return filepath.Join(p.Root, "covdata", ".lock")
}

// ResultsDir accumulates one subdirectory per scenario
func (p Paths) ResultsDir() string {
	return filepath.Join(p.Root, "results")
}

// ScenarioDir is the results subdirectory owned by a scenario
func (p Paths) ScenarioDir(name string) string {
	return filepath.Join(p.ResultsDir(), name)
}

// ArtifactsDir holds locally published artifacts. It lives outside the
// results directory so it survives session resets.
func (p Paths) ArtifactsDir() string {
	return filepath.Join(p.StateDir(), "artifacts")
}

// MergedProfilePath is where merged CPU profiles are written
func (p Paths) MergedProfilePath() string {
	return filepath.Join(p.Root, domain.MergedProfileName)
}

// StateDir holds covrun's own files
func (p Paths) StateDir() string {
	return filepath.Join(p.Root, ".covrun")
}

// SettingsPath is the settings.json location
func (p Paths) SettingsPath() string {
	return filepath.Join(p.StateDir(), "settings.json")
}

// LedgerPath is the SQLite run ledger
func (p Paths) LedgerPath() string {
	return filepath.Join(p.StateDir(), "ledger.db")
}

// Resolve makes path absolute relative to the project root
func (p Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// FindProjectRoot asks the go command for the main module directory and
// falls back to walking up from the working directory looking for go.mod.
func FindProjectRoot(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "go", "list", "-m", "-f", "{{.Dir}}")
	if out, err := cmd.Output(); err == nil {
		if dir := strings.TrimSpace(string(out)); dir != "" {
			return dir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findGoMod(wd)
}

func findGoMod(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
