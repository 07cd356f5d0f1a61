package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SessionStatus is the final state of a harness session
type SessionStatus string

const (
	SessionAborted SessionStatus = "aborted"
	SessionFailed  SessionStatus = "failed"
	SessionPassed  SessionStatus = "passed"
	SessionRunning SessionStatus = "running"
)

// Scenario is one integration case. Each scenario owns the results
// subdirectory named after it.
type Scenario struct {
	Args      []string          `yaml:"args"`
	Env       map[string]string `yaml:"env"`
	Member    string            `yaml:"member"` // Archive member holding the payload
	Name      string            `yaml:"name"`
	NeedsPort bool              `yaml:"needs_port"` // Allocate a free port for {port}
	Profile   bool              `yaml:"profile"`    // Export OUTPUT_DIR for profiler output
	Report    string            `yaml:"report"`     // Report path relative to the scenario dir
	Timeout   time.Duration     `yaml:"timeout"`
}

// ValidateScenarios rejects empty, duplicate and non path element scenario
// names. Each name becomes one directory directly under results, so names
// must not nest, escape or alias each other.
func ValidateScenarios(scenarios []Scenario) error {
	seen := make(map[string]bool, len(scenarios))
	for i, sc := range scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario #%d has no name", i+1)
		}
		if !isPathElement(sc.Name) {
			return fmt.Errorf("invalid scenario name %q: must be a single directory name", sc.Name)
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}

func isPathElement(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name && filepath.Clean(name) == name
}

// ScenarioResult is what a session learned about one scenario
type ScenarioResult struct {
	Err      error
	Payload  *ReportPayload
	Run      RunResult
	Scenario string
}

// Outcome folds run and validation errors into one classification
func (r ScenarioResult) Outcome() RunOutcome {
	if r.Run.Outcome != "" && r.Run.Outcome != OutcomeOK {
		return r.Run.Outcome
	}
	if r.Err != nil {
		return OutcomeValidationFailure
	}
	return OutcomeOK
}

// FileCoverage is statement coverage for a single source file
type FileCoverage struct {
	Covered    int
	File       string
	Statements int
}

// Percent returns covered statements as a percentage
func (f FileCoverage) Percent() float64 {
	if f.Statements == 0 {
		return 0
	}
	return 100 * float64(f.Covered) / float64(f.Statements)
}

// CoverageSummary aggregates coverage over all runs of a session
type CoverageSummary struct {
	Files       []FileCoverage
	ProfilePath string
	Total       FileCoverage
}

// SessionReport summarizes one provision, build, run and aggregate sequence
type SessionReport struct {
	Coverage   *CoverageSummary
	FinishedAt time.Time
	ID         string
	Mode       BuildMode
	Profiles   *ProfileSet
	Results    []ScenarioResult
	StartedAt  time.Time
	Status     SessionStatus
}

// Failed returns the scenario results that did not pass
func (r *SessionReport) Failed() []ScenarioResult {
	var failed []ScenarioResult
	for _, res := range r.Results {
		if res.Outcome() != OutcomeOK {
			failed = append(failed, res)
		}
	}
	return failed
}
