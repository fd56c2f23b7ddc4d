package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/database/syncruns"
)

// SyncCatalogTask runs one catalog sync pass for a single entity kind in the
// background. Kind is "brands" or "products".
type SyncCatalogTask struct {
	Kind string `json:"kind"`
}

// syncQueueTuning holds the retry/timeout settings for the sync queue.
// backlite reads queue configuration through the task type's Config method,
// so the operator-configured values are stashed here by NewSyncCatalogQueue
// before the queue is registered.
var syncQueueTuning = DefaultConfig()

// Config returns the queue configuration for catalog sync tasks.
func (t SyncCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_catalog",
		MaxAttempts: syncQueueTuning.MaxRetries,
		Backoff:     syncQueueTuning.RetryDelay,
		Timeout:     syncQueueTuning.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   syncQueueTuning.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncCatalogProcessor creates the processor for catalog sync tasks. Each
// pass is recorded in the sync run history, including failures, so the
// outcome is observable from the API after the task finishes.
func SyncCatalogProcessor(engines map[string]*catalogsync.Engine, runs *syncruns.Repository) backlite.QueueProcessor[SyncCatalogTask] {
	return func(ctx context.Context, task SyncCatalogTask) error {
		engine, ok := engines[task.Kind]
		if !ok {
			return fmt.Errorf("unknown sync kind %q", task.Kind)
		}

		run, err := runs.Start(task.Kind)
		if err != nil {
			return fmt.Errorf("record sync run: %w", err)
		}

		report, err := engine.Sync(ctx)
		if err != nil {
			if failErr := runs.Fail(run, err); failErr != nil {
				log.Printf("[TASK ERROR] Failed to record failed %s sync: %v", task.Kind, failErr)
			}
			return fmt.Errorf("sync %s: %w", task.Kind, err)
		}

		if err := runs.Complete(run, report); err != nil {
			log.Printf("[TASK ERROR] Failed to record completed %s sync: %v", task.Kind, err)
		}

		log.Printf("[TASK] Synced %s: %d processed (%d created, %d updated), %d skipped, %d failed",
			task.Kind, report.Processed(), report.Created, report.Updated, report.Skipped, report.Failed)
		return nil
	}
}

// NewSyncCatalogQueue creates the backlite queue for catalog sync tasks,
// applying the configured retry/timeout tuning.
func NewSyncCatalogQueue(engines map[string]*catalogsync.Engine, runs *syncruns.Repository, cfg Config) backlite.Queue {
	syncQueueTuning = cfg.withDefaults()
	return backlite.NewQueue(SyncCatalogProcessor(engines, runs))
}
