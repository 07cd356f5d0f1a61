package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// SQLiteLedger implements ports.RunLedger using GORM
type SQLiteLedger struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.RunLedger = (*SQLiteLedger)(nil)

// gormLogger wraps the covrun logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
		return
	}
	logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
}

func newGormLogger() logger.Interface {
	if os.Getenv("COVRUN_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteLedger opens (creating if needed) the ledger database at dbPath
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      newGormLogger(),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Parallel scenarios record runs concurrently
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&SessionModel{}, &RunModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteLedger{db: db}, nil
}

// Close closes the database connection
func (l *SQLiteLedger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StartSession implements RunLedgerWriter.StartSession
func (l *SQLiteLedger) StartSession(ctx context.Context, id string, mode domain.BuildMode) error {
	model := SessionModel{
		ID:        id,
		Mode:      string(mode),
		StartedAt: time.Now().UTC(),
		Status:    string(domain.SessionRunning),
	}
	return withRetry(func() error {
		if err := l.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to record session %s: %w", id, err)
		}
		return nil
	}, 3)
}

// FinishSession implements RunLedgerWriter.FinishSession
func (l *SQLiteLedger) FinishSession(ctx context.Context, id string, status domain.SessionStatus) error {
	now := time.Now().UTC()
	return withRetry(func() error {
		result := l.db.WithContext(ctx).Model(&SessionModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"finished_at": now, "status": string(status)})
		if result.Error != nil {
			return fmt.Errorf("failed to finish session %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("session %s not found", id)
		}
		return nil
	}, 3)
}

// RecordRun implements RunLedgerWriter.RecordRun
func (l *SQLiteLedger) RecordRun(ctx context.Context, sessionID string, result domain.ScenarioResult) error {
	model, err := scenarioResultToRunModel(sessionID, result)
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", result.Scenario, err)
	}
	return withRetry(func() error {
		if err := l.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to record run %s: %w", result.Scenario, err)
		}
		return nil
	}, 3)
}

// ListSessions implements RunLedgerReader.ListSessions, newest first.
// A non-positive limit returns every session.
func (l *SQLiteLedger) ListSessions(ctx context.Context, limit int) ([]ports.LedgerSession, error) {
	var models []SessionModel
	query := l.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]ports.LedgerSession, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, sessionModelToLedger(m))
	}
	return sessions, nil
}

// ListRuns implements RunLedgerReader.ListRuns in recording order
func (l *SQLiteLedger) ListRuns(ctx context.Context, sessionID string) ([]ports.LedgerRun, error) {
	var models []RunModel
	err := l.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("scenario ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for session %s: %w", sessionID, err)
	}

	runs := make([]ports.LedgerRun, 0, len(models))
	for _, m := range models {
		runs = append(runs, runModelToLedger(m))
	}
	return runs, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
