package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/vendorapi"
)

type fakeSyncEngine struct {
	kind      string
	report    catalogsync.Report
	entries   []catalogsync.ReconciledEntry
	err       error
	syncCalls int
	viewCalls int
}

func (f *fakeSyncEngine) Kind() string { return f.kind }

func (f *fakeSyncEngine) Sync(_ context.Context) (catalogsync.Report, error) {
	f.syncCalls++
	if f.err != nil {
		return catalogsync.Report{}, f.err
	}
	return f.report, nil
}

func (f *fakeSyncEngine) BuildView(_ context.Context) ([]catalogsync.ReconciledEntry, error) {
	f.viewCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func setupSyncRouter(engine *fakeSyncEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	sc := NewSyncController(map[string]SyncEngine{engine.kind: engine}, nil, nil)
	router.POST("/api/brands/sync", sc.Sync("brands"))
	router.GET("/api/brands/report", sc.Report("brands"))
	router.GET("/api/sync/runs", sc.ListRuns)
	return router
}

func TestSyncController_Sync_ReturnsReportCounters(t *testing.T) {
	engine := &fakeSyncEngine{
		kind: "brands",
		// Per-record problems are counters, not an error status
		report: catalogsync.Report{Created: 3, Updated: 5, Skipped: 1, Failed: 2},
	}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/brands/sync", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report catalogsync.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 5, report.Updated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, engine.syncCalls)
}

func TestSyncController_Sync_UpstreamFailureIs502(t *testing.T) {
	engine := &fakeSyncEngine{
		kind: "brands",
		err:  &vendorapi.StatusError{StatusCode: http.StatusServiceUnavailable},
	}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/brands/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "503")
}

func TestSyncController_Sync_ConfigFailureIs500(t *testing.T) {
	engine := &fakeSyncEngine{kind: "brands", err: vendorapi.ErrNotConfigured}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/brands/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSyncController_Report(t *testing.T) {
	engine := &fakeSyncEngine{
		kind: "brands",
		entries: []catalogsync.ReconciledEntry{
			{ExternalID: 1, Name: "B1", Present: true, Status: catalogsync.StatusSaved},
			{ExternalID: 2, Name: "B2", Present: false, Status: catalogsync.StatusNotSaved},
		},
	}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/brands/report", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Kind    string                        `json:"kind"`
		Total   int                           `json:"total"`
		Entries []catalogsync.ReconciledEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "brands", body.Kind)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, catalogsync.StatusNotSaved, body.Entries[1].Status)

	// Reporting must never trigger a sync
	assert.Zero(t, engine.syncCalls)
	assert.Equal(t, 1, engine.viewCalls)
}

func TestSyncController_Report_UpstreamFailureIs502(t *testing.T) {
	engine := &fakeSyncEngine{kind: "brands", err: vendorapi.ErrInvalidCredentials}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/brands/report", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSyncController_ListRuns_NoRepository(t *testing.T) {
	engine := &fakeSyncEngine{kind: "brands"}
	router := setupSyncRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sync/runs", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs":[]}`, w.Body.String())
}

func TestSyncController_UnknownKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	sc := NewSyncController(map[string]SyncEngine{}, nil, nil)
	router.POST("/api/products/sync", sc.Sync("products"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

type fakeScheduler struct {
	running  bool
	syncing  bool
	next     *time.Time
	runCalls int
}

func (s *fakeScheduler) IsRunning() bool         { return s.running }
func (s *fakeScheduler) IsSyncing() bool         { return s.syncing }
func (s *fakeScheduler) NextRunTime() *time.Time { return s.next }
func (s *fakeScheduler) RunNow()                 { s.runCalls++ }

func setupSchedulerRouter(scheduler SyncScheduler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	sc := NewSyncController(map[string]SyncEngine{}, nil, scheduler)
	router.GET("/api/sync/status", sc.SchedulerStatus)
	router.POST("/api/sync/run", sc.TriggerSync)
	return router
}

func TestSyncController_SchedulerStatus(t *testing.T) {
	next := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	router := setupSchedulerRouter(&fakeScheduler{running: true, syncing: true, next: &next})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["scheduler_enabled"])
	assert.Equal(t, true, body["syncing"])
	assert.Equal(t, "2026-09-01T12:00:00Z", body["next_run"])
}

func TestSyncController_SchedulerStatus_NoScheduler(t *testing.T) {
	router := setupSchedulerRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["scheduler_enabled"])
	assert.Nil(t, body["next_run"])
}

func TestSyncController_TriggerSync(t *testing.T) {
	scheduler := &fakeScheduler{}
	router := setupSchedulerRouter(scheduler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync/run", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, scheduler.runCalls)
}

func TestSyncController_TriggerSync_NoScheduler(t *testing.T) {
	router := setupSchedulerRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync/run", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
