package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/database/syncruns"
	"github.com/svaldez/catalog-admin/internal/entities"
	"github.com/svaldez/catalog-admin/internal/vendorapi"
)

// SyncEngine is the part of the catalog sync engine the HTTP layer needs.
type SyncEngine interface {
	Kind() string
	Sync(ctx context.Context) (catalogsync.Report, error)
	BuildView(ctx context.Context) ([]catalogsync.ReconciledEntry, error)
}

// SyncScheduler is the slice of the cron scheduler the API exposes.
type SyncScheduler interface {
	IsRunning() bool
	IsSyncing() bool
	NextRunTime() *time.Time
	RunNow()
}

// SyncController exposes the sync and reconciliation report endpoints for
// all entity kinds.
type SyncController struct {
	engines   map[string]SyncEngine
	runs      *syncruns.Repository
	scheduler SyncScheduler
}

// NewSyncController creates the sync controller. The runs repository and
// scheduler are optional; without them passes are not recorded and the
// scheduler endpoints report accordingly.
func NewSyncController(engines map[string]SyncEngine, runs *syncruns.Repository, scheduler SyncScheduler) *SyncController {
	return &SyncController{engines: engines, runs: runs, scheduler: scheduler}
}

// Sync runs one synchronous sync pass for the given kind and returns the
// report counters. Per-record problems (skipped, failed) still produce a 200:
// the pass itself succeeded and the counters tell the operator what happened.
// POST /api/brands/sync, POST /api/products/sync
func (sc *SyncController) Sync(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sc.engines[kind]
		if !ok {
			respondNotFound(c, kind+" sync")
			return
		}

		run := sc.recordStart(kind)

		report, err := engine.Sync(c.Request.Context())
		if err != nil {
			sc.recordFail(run, err)
			status := syncErrorStatus(err)
			log.Printf("Sync (%s) failed: %v", kind, err)
			c.JSON(status, ErrorResponse{Error: err.Error()})
			return
		}
		sc.recordComplete(run, report)

		c.JSON(http.StatusOK, report)
	}
}

// Report returns the reconciled remote-vs-local view for the given kind.
// The report is derived on every request and performs no writes.
// GET /api/brands/report, GET /api/products/report
func (sc *SyncController) Report(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := sc.engines[kind]
		if !ok {
			respondNotFound(c, kind+" report")
			return
		}

		entries, err := engine.BuildView(c.Request.Context())
		if err != nil {
			status := syncErrorStatus(err)
			log.Printf("Report (%s) failed: %v", kind, err)
			c.JSON(status, ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"kind":    kind,
			"total":   len(entries),
			"entries": entries,
		})
	}
}

// ListRuns returns the persisted sync pass history, newest first.
// GET /api/sync/runs
func (sc *SyncController) ListRuns(c *gin.Context) {
	if sc.runs == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []any{}})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := sc.runs.List(limit)
	if err != nil {
		respondInternalError(c, err, "list sync runs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// SchedulerStatus reports whether the cron scheduler is active, whether a
// pass is in flight right now, and when the next scheduled pass is due.
// GET /api/sync/status
func (sc *SyncController) SchedulerStatus(c *gin.Context) {
	if sc.scheduler == nil {
		c.JSON(http.StatusOK, gin.H{
			"scheduler_enabled": false,
			"syncing":           false,
			"next_run":          nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduler_enabled": sc.scheduler.IsRunning(),
		"syncing":           sc.scheduler.IsSyncing(),
		"next_run":          sc.scheduler.NextRunTime(),
	})
}

// TriggerSync kicks off a full sync pass (brands then products) in the
// background and returns immediately; progress lands in the run history.
// POST /api/sync/run
func (sc *SyncController) TriggerSync(c *gin.Context) {
	if sc.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "sync scheduler is not available"})
		return
	}

	sc.scheduler.RunNow()
	c.JSON(http.StatusAccepted, gin.H{"message": "sync started"})
}

func (sc *SyncController) recordStart(kind string) *startedRun {
	if sc.runs == nil {
		return nil
	}
	run, err := sc.runs.Start(kind)
	if err != nil {
		log.Printf("Failed to record %s sync run: %v", kind, err)
		return nil
	}
	return &startedRun{repo: sc.runs, run: run}
}

func (sc *SyncController) recordFail(r *startedRun, err error) {
	if r == nil {
		return
	}
	if failErr := r.repo.Fail(r.run, err); failErr != nil {
		log.Printf("Failed to record failed sync run: %v", failErr)
	}
}

func (sc *SyncController) recordComplete(r *startedRun, report catalogsync.Report) {
	if r == nil {
		return
	}
	if err := r.repo.Complete(r.run, report); err != nil {
		log.Printf("Failed to record completed sync run: %v", err)
	}
}

type startedRun struct {
	repo *syncruns.Repository
	run  *entities.SyncRun
}

// syncErrorStatus maps pass-level sync failures onto HTTP statuses: upstream
// vendor problems are a 502 (the admin itself is healthy), everything else
// (missing configuration, dead store) is a 500.
func syncErrorStatus(err error) int {
	var statusErr *vendorapi.StatusError
	var malformed *vendorapi.MalformedResponseError
	switch {
	case errors.As(err, &statusErr),
		errors.As(err, &malformed),
		errors.Is(err, vendorapi.ErrInvalidCredentials):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
