package ports

import (
	"context"
	"time"

	"github.com/renato0307/covrun/internal/domain"
)

// LedgerSession is a recorded harness session
type LedgerSession struct {
	FinishedAt *time.Time
	ID         string
	Mode       domain.BuildMode
	StartedAt  time.Time
	Status     domain.SessionStatus
}

// LedgerRun is a recorded scenario run
type LedgerRun struct {
	Args            []string
	Elapsed         time.Duration
	ExitCode        int
	ID              string
	Outcome         domain.RunOutcome
	Output          string
	RecordedAt      time.Time
	Scenario        string
	SessionID       string
	ValidationError string
}

// RunLedgerWriter records sessions and their runs
type RunLedgerWriter interface {
	FinishSession(ctx context.Context, id string, status domain.SessionStatus) error
	RecordRun(ctx context.Context, sessionID string, result domain.ScenarioResult) error
	StartSession(ctx context.Context, id string, mode domain.BuildMode) error
}

// RunLedgerReader reads back recorded history
type RunLedgerReader interface {
	ListRuns(ctx context.Context, sessionID string) ([]LedgerRun, error)
	ListSessions(ctx context.Context, limit int) ([]LedgerSession, error)
}

// RunLedger is the composite interface
type RunLedger interface {
	RunLedgerReader
	RunLedgerWriter
	Close() error
}
