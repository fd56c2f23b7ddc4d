package entities

import "time"

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun records one vendor sync pass for one entity kind, with the
// aggregate counters the pass reported. Rows are append-only history.
type SyncRun struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Kind       string     `gorm:"index;size:20" json:"kind"` // "brands" or "products"
	Status     SyncStatus `gorm:"size:20;default:'running'" json:"status"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	Error      string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}
