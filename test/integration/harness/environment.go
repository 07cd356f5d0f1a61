package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated project root for one test
type TestEnvironment struct {
	ProjectRoot string
	extraEnv    map[string]string
	tb          testing.TB
}

// NewTestEnvironment creates a temp project root holding a minimal go.mod.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	root := tb.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/subject\n\ngo 1.25\n"), 0644); err != nil {
		tb.Fatalf("Failed to create go.mod: %v", err)
	}

	return &TestEnvironment{
		ProjectRoot: root,
		extraEnv:    make(map[string]string),
		tb:          tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out COVRUN_* variables and sets:
//   - COVRUN_PROJECT_ROOT to the temp project
//   - COVRUN_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "COVRUN_") || key == "GOCOVERDIR" {
			continue
		}
		if _, ok := e.extraEnv[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"COVRUN_PROJECT_ROOT="+e.ProjectRoot,
		"COVRUN_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// LedgerPath returns the path to the test ledger database
func (e *TestEnvironment) LedgerPath() string {
	return filepath.Join(e.ProjectRoot, ".covrun", "ledger.db")
}

// ResultsDir returns the results directory of the test project
func (e *TestEnvironment) ResultsDir() string {
	return filepath.Join(e.ProjectRoot, "results")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// WriteFile creates a file relative to the project root, with parents
func (e *TestEnvironment) WriteFile(rel string, data []byte) string {
	e.tb.Helper()
	path := filepath.Join(e.ProjectRoot, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.tb.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.tb.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}
