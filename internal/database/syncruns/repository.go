// Package syncruns records the history of vendor sync passes.
//
// One row is created when a pass starts and finalized with the aggregate
// counters (or the pass-level error) when it ends, so operators can see what
// the last sync actually did without digging through logs.
package syncruns

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// Repository handles sync run history.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sync run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start records the beginning of a sync pass for one entity kind.
func (r *Repository) Start(kind string) (*entities.SyncRun, error) {
	run := &entities.SyncRun{
		Kind:      kind,
		Status:    entities.SyncStatusRunning,
		StartedAt: time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// Complete finalizes a run with the report counters.
func (r *Repository) Complete(run *entities.SyncRun, report catalogsync.Report) error {
	now := time.Now()
	run.Status = entities.SyncStatusCompleted
	run.Created = report.Created
	run.Updated = report.Updated
	run.Skipped = report.Skipped
	run.Failed = report.Failed
	run.FinishedAt = &now
	return r.db.Save(run).Error
}

// Fail finalizes a run that aborted with a pass-level error.
func (r *Repository) Fail(run *entities.SyncRun, passErr error) error {
	now := time.Now()
	run.Status = entities.SyncStatusFailed
	run.Error = passErr.Error()
	run.FinishedAt = &now
	return r.db.Save(run).Error
}

// List returns the most recent runs, newest first.
func (r *Repository) List(limit int) ([]entities.SyncRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []entities.SyncRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Latest returns the most recent run for one kind, or nil when none exists.
func (r *Repository) Latest(kind string) (*entities.SyncRun, error) {
	var run entities.SyncRun
	err := r.db.Where("kind = ?", kind).Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
