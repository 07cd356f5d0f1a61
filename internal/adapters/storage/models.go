package storage

import "time"

// SessionModel is the GORM model for sessions table
type SessionModel struct {
	CreatedAt  time.Time
	FinishedAt *time.Time `gorm:"default:null"`
	ID         string     `gorm:"primaryKey"`
	Mode       string     `gorm:"not null;default:'coverage'"`
	StartedAt  time.Time  `gorm:"not null;index:idx_started_at"`
	Status     string     `gorm:"not null;default:'running';check:status IN ('running','passed','failed','aborted')"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// RunModel is the GORM model for scenario runs
type RunModel struct {
	Args            string `gorm:"not null;default:'[]'"` // JSON encoded argument list
	CreatedAt       time.Time
	ElapsedMillis   int64  `gorm:"not null;default:0"`
	ExitCode        int    `gorm:"not null;default:0"`
	ID              string `gorm:"primaryKey"`
	Outcome         string `gorm:"not null;check:outcome IN ('ok','run_failure','timeout','validation_failure')"`
	Output          string `gorm:"default:''"`
	Scenario        string `gorm:"not null;index:idx_scenario"`
	SessionID       string `gorm:"not null;index:idx_session_id"`
	ValidationError string `gorm:"default:''"`
}

// TableName specifies the table name for GORM
func (RunModel) TableName() string { return "runs" }
