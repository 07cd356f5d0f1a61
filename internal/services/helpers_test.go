package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
)

// recordingReporter collects progress lines and outcomes
type recordingReporter struct {
	failures []error
	lines    []string
	mu       sync.Mutex
	outcomes map[string]domain.RunOutcome
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{outcomes: make(map[string]domain.RunOutcome)}
}

func (r *recordingReporter) Failure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recordingReporter) Logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Outcome(res domain.ScenarioResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[res.Scenario] = res.Outcome()
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Default(t.TempDir())
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
