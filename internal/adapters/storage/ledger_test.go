package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/domain"
)

func newTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	ledger, err := NewSQLiteLedger(filepath.Join(t.TempDir(), ".covrun", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestLedger_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	require.NoError(t, ledger.StartSession(ctx, "s1", domain.ModeCoverage))

	sessions, err := ledger.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, domain.ModeCoverage, sessions[0].Mode)
	assert.Equal(t, domain.SessionRunning, sessions[0].Status)
	assert.Nil(t, sessions[0].FinishedAt)

	require.NoError(t, ledger.FinishSession(ctx, "s1", domain.SessionPassed))

	sessions, err = ledger.ListSessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.SessionPassed, sessions[0].Status)
	assert.NotNil(t, sessions[0].FinishedAt)
}

func TestLedger_FinishUnknownSession(t *testing.T) {
	err := newTestLedger(t).FinishSession(context.Background(), "nope", domain.SessionFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLedger_ListSessionsNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, ledger.StartSession(ctx, id, domain.ModeProfileGuided))
		time.Sleep(5 * time.Millisecond)
	}

	sessions, err := ledger.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "c", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
}

func TestLedger_RecordRun(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	require.NoError(t, ledger.StartSession(ctx, "s1", domain.ModeCoverage))

	results := []domain.ScenarioResult{
		{
			Run: domain.RunResult{
				Args:    []string{"/tmp/gsa", "--format", "html"},
				Elapsed: 1500 * time.Millisecond,
				Outcome: domain.OutcomeOK,
			},
			Scenario: "html",
		},
		{
			Err: &domain.HarnessError{Key: "size", Kind: domain.ErrSchemaViolation, Op: "validate payload", Err: errors.New("missing key")},
			Run: domain.RunResult{
				Args:    []string{"/tmp/gsa", "--format", "json"},
				Outcome: domain.OutcomeOK,
			},
			Scenario: "json",
		},
		{
			Err: &domain.HarnessError{Kind: domain.ErrRunFailure, Op: "run svg"},
			Run: domain.RunResult{
				ExitCode: 2,
				Outcome:  domain.OutcomeRunFailure,
				Output:   "\nstderr:\nbad flag",
			},
			Scenario: "svg",
		},
	}
	for _, r := range results {
		require.NoError(t, ledger.RecordRun(ctx, "s1", r))
	}

	runs, err := ledger.ListRuns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, runs, 3)

	byScenario := make(map[string]int)
	for i, r := range runs {
		byScenario[r.Scenario] = i
		assert.Equal(t, "s1", r.SessionID)
		assert.NotEmpty(t, r.ID)
	}

	html := runs[byScenario["html"]]
	assert.Equal(t, domain.OutcomeOK, html.Outcome)
	assert.Equal(t, []string{"/tmp/gsa", "--format", "html"}, html.Args)
	assert.Equal(t, 1500*time.Millisecond, html.Elapsed)
	assert.Empty(t, html.ValidationError)

	jsonRun := runs[byScenario["json"]]
	assert.Equal(t, domain.OutcomeValidationFailure, jsonRun.Outcome)
	assert.Contains(t, jsonRun.ValidationError, "size")

	svg := runs[byScenario["svg"]]
	assert.Equal(t, domain.OutcomeRunFailure, svg.Outcome)
	assert.Equal(t, 2, svg.ExitCode)
	assert.Equal(t, "\nstderr:\nbad flag", svg.Output)
	assert.Empty(t, svg.ValidationError)

	other, err := ledger.ListRuns(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedger_ReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	first, err := NewSQLiteLedger(path)
	require.NoError(t, err)
	require.NoError(t, first.StartSession(ctx, "s1", domain.ModePlain))
	require.NoError(t, first.Close())

	second, err := NewSQLiteLedger(path)
	require.NoError(t, err)
	defer second.Close()

	sessions, err := second.ListSessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.ModePlain, sessions[0].Mode)
}
