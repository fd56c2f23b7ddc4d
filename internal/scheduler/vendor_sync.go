// Package scheduler runs periodic catalog syncs against the vendor API.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/database/syncruns"
)

// VendorSyncScheduler runs brand and product syncs on a cron schedule.
// Disabled by default; enable with VENDOR_SYNC_ENABLED.
type VendorSyncScheduler struct {
	engines map[string]*catalogsync.Engine
	runs    *syncruns.Repository
	config  config.VendorSync

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewVendorSyncScheduler creates a scheduler over the given sync engines,
// keyed by entity kind.
func NewVendorSyncScheduler(engines map[string]*catalogsync.Engine, runs *syncruns.Repository, cfg config.VendorSync) *VendorSyncScheduler {
	return &VendorSyncScheduler{
		engines: engines,
		runs:    runs,
		config:  cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if vendor sync is enabled.
func (s *VendorSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Vendor sync scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Vendor sync scheduler: started with schedule %q", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync to finish.
func (s *VendorSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Vendor sync scheduler: stopped")
}

// RunNow triggers an immediate sync pass in the background.
func (s *VendorSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *VendorSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync pass is currently in progress.
func (s *VendorSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// NextRunTime returns when the next scheduled sync will occur.
func (s *VendorSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync syncs every configured kind, brands before products so that brand
// rows exist when product records reference them. Overlapping passes are
// skipped rather than queued.
func (s *VendorSyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Vendor sync: skipped (already syncing)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, kind := range []string{"brands", "products"} {
		engine, ok := s.engines[kind]
		if !ok {
			continue
		}
		s.syncKind(ctx, kind, engine)
	}
}

func (s *VendorSyncScheduler) syncKind(ctx context.Context, kind string, engine *catalogsync.Engine) {
	startTime := time.Now()

	run, err := s.runs.Start(kind)
	if err != nil {
		log.Printf("Vendor sync: failed to record %s run: %v", kind, err)
		return
	}

	report, err := engine.Sync(ctx)
	if err != nil {
		log.Printf("Vendor sync: %s pass failed: %v", kind, err)
		if failErr := s.runs.Fail(run, err); failErr != nil {
			log.Printf("Vendor sync: failed to record failed %s run: %v", kind, failErr)
		}
		return
	}

	if err := s.runs.Complete(run, report); err != nil {
		log.Printf("Vendor sync: failed to record completed %s run: %v", kind, err)
	}

	log.Printf("Vendor sync: %s pass finished in %v: %d processed (%d created, %d updated), %d skipped, %d failed",
		kind, time.Since(startTime).Round(time.Millisecond),
		report.Processed(), report.Created, report.Updated, report.Skipped, report.Failed)
}
