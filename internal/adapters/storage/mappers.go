package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/ports"
)

// sessionModelToLedger converts a SessionModel (GORM) to ports.LedgerSession
func sessionModelToLedger(m SessionModel) ports.LedgerSession {
	return ports.LedgerSession{
		FinishedAt: m.FinishedAt,
		ID:         m.ID,
		Mode:       domain.BuildMode(m.Mode),
		StartedAt:  m.StartedAt,
		Status:     domain.SessionStatus(m.Status),
	}
}

// runModelToLedger converts a RunModel (GORM) to ports.LedgerRun
func runModelToLedger(m RunModel) ports.LedgerRun {
	var args []string
	// Old rows may hold an empty string
	_ = json.Unmarshal([]byte(m.Args), &args)

	return ports.LedgerRun{
		Args:            args,
		Elapsed:         time.Duration(m.ElapsedMillis) * time.Millisecond,
		ExitCode:        m.ExitCode,
		ID:              m.ID,
		Outcome:         domain.RunOutcome(m.Outcome),
		Output:          m.Output,
		RecordedAt:      m.CreatedAt,
		Scenario:        m.Scenario,
		SessionID:       m.SessionID,
		ValidationError: m.ValidationError,
	}
}

// scenarioResultToRunModel converts a domain.ScenarioResult to RunModel (GORM)
func scenarioResultToRunModel(sessionID string, r domain.ScenarioResult) (RunModel, error) {
	args, err := json.Marshal(r.Run.Args)
	if err != nil {
		return RunModel{}, err
	}
	if r.Run.Args == nil {
		args = []byte("[]")
	}

	m := RunModel{
		Args:          string(args),
		ElapsedMillis: r.Run.Elapsed.Milliseconds(),
		ExitCode:      r.Run.ExitCode,
		ID:            uuid.New().String(),
		Outcome:       string(r.Outcome()),
		Output:        r.Run.Output,
		Scenario:      r.Scenario,
		SessionID:     sessionID,
	}

	// Run failures are already described by exit code and output
	if r.Err != nil && r.Outcome() == domain.OutcomeValidationFailure {
		m.ValidationError = r.Err.Error()
	}
	return m, nil
}
