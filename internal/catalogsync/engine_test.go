package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	Name     string
	Image    string
	Complete bool
}

// fakeStore keeps rows in a map keyed by external id, which makes upserts
// naturally idempotent the way a unique index does.
type fakeStore struct {
	rows       map[int64]*fakeRow
	failIDs    map[int64]error
	fatalErr   error
	upsertCnt  int
	listAllCnt int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]*fakeRow{}, failIDs: map[int64]error{}}
}

func (s *fakeStore) Upsert(_ context.Context, rec Record) (bool, error) {
	s.upsertCnt++
	if s.fatalErr != nil {
		return false, s.fatalErr
	}
	if err, ok := s.failIDs[rec.ExternalID]; ok {
		return false, err
	}
	if row, ok := s.rows[rec.ExternalID]; ok {
		row.Name = rec.Name
		return false, nil
	}
	s.rows[rec.ExternalID] = &fakeRow{Name: rec.Name}
	return true, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]LocalSummary, error) {
	s.listAllCnt++
	out := make([]LocalSummary, 0, len(s.rows))
	for id, row := range s.rows {
		out = append(out, LocalSummary{
			ExternalID: id,
			Name:       row.Name,
			Image:      row.Image,
			Complete:   row.Complete,
		})
	}
	return out, nil
}

type fakeFetcher struct {
	records []map[string]any
	err     error
	calls   int
}

func (f *fakeFetcher) FetchRecords(_ context.Context) ([]map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

var brandMapping = Mapping{Kind: "brands", IDField: "idmarca", NameField: "denominacion"}

func brandRecord(id any, name any) map[string]any {
	return map[string]any{"idmarca": id, "denominacion": name}
}

func TestEngine_Sync_CreatesThenUpdates(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{records: []map[string]any{brandRecord("7", "Acme")}}
	engine := New(store, fetcher, brandMapping)

	report, err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Created: 1}, report)
	require.Contains(t, store.rows, int64(7))
	assert.Equal(t, "Acme", store.rows[7].Name)

	// Same id with a new name on the next pass updates in place.
	fetcher.records = []map[string]any{brandRecord(float64(7), "Acme Renamed")}
	report, err = engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Updated: 1}, report)
	assert.Len(t, store.rows, 1)
	assert.Equal(t, "Acme Renamed", store.rows[7].Name)
}

func TestEngine_Sync_Idempotent(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{records: []map[string]any{
		brandRecord(float64(1), "One"),
		brandRecord(float64(2), "Two"),
	}}
	engine := New(store, fetcher, brandMapping)

	first, err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Len(t, store.rows, 2)
}

func TestEngine_Sync_SkipsInvalidRecords(t *testing.T) {
	cases := []struct {
		name   string
		record map[string]any
	}{
		{"missing id", map[string]any{"denominacion": "NoID"}},
		{"nil id", brandRecord(nil, "NilID")},
		{"non-numeric id", brandRecord("abc", "BadID")},
		{"fractional id", brandRecord(float64(3.5), "Frac")},
		{"non-positive id", brandRecord(float64(0), "Zero")},
		{"missing name", map[string]any{"idmarca": float64(9)}},
		{"blank name", brandRecord(float64(9), "   ")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			fetcher := &fakeFetcher{records: []map[string]any{
				tc.record,
				brandRecord(float64(4), "Valid"),
			}}
			engine := New(store, fetcher, brandMapping)

			report, err := engine.Sync(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, report.Skipped)
			assert.Equal(t, 1, report.Created)
			assert.Len(t, store.rows, 1)
			assert.Contains(t, store.rows, int64(4))
		})
	}
}

func TestEngine_Sync_RowErrorCountedAndPassContinues(t *testing.T) {
	store := newFakeStore()
	store.failIDs[2] = errors.New("constraint violation")
	fetcher := &fakeFetcher{records: []map[string]any{
		brandRecord(float64(1), "One"),
		brandRecord(float64(2), "Broken"),
		brandRecord(float64(3), "Three"),
	}}
	engine := New(store, fetcher, brandMapping)

	report, err := engine.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, int64(2), report.Errors[0].ExternalID)
	assert.Len(t, store.rows, 2)
}

func TestEngine_Sync_FatalStoreErrorAbortsPass(t *testing.T) {
	fatals := []error{
		fmt.Errorf("open db: %w", ErrStoreUnavailable),
		context.DeadlineExceeded,
	}

	for _, fatal := range fatals {
		store := newFakeStore()
		store.fatalErr = fatal
		fetcher := &fakeFetcher{records: []map[string]any{
			brandRecord(float64(1), "One"),
			brandRecord(float64(2), "Two"),
		}}
		engine := New(store, fetcher, brandMapping)

		report, err := engine.Sync(context.Background())
		require.Error(t, err)
		// No partial report escapes a fatal pass.
		assert.Equal(t, Report{}, report)
		assert.Equal(t, 1, store.upsertCnt)
		store.upsertCnt = 0
	}
}

func TestEngine_Sync_FetcherErrorPropagates(t *testing.T) {
	store := newFakeStore()
	upstream := errors.New("vendor API: HTTP 503")
	engine := New(store, &fakeFetcher{err: upstream}, brandMapping)

	report, err := engine.Sync(context.Background())
	require.ErrorIs(t, err, upstream)
	assert.Equal(t, Report{}, report)
	assert.Zero(t, store.upsertCnt)
}

func TestEngine_BuildView_JoinsRemoteAgainstLocal(t *testing.T) {
	store := newFakeStore()
	store.rows[1] = &fakeRow{Name: "B1", Image: "b1.png"}
	store.rows[2] = &fakeRow{Name: "B2 old", Image: "b2.png"}
	// Local-only row: must not appear in the remote-keyed view.
	store.rows[99] = &fakeRow{Name: "Orphan"}

	fetcher := &fakeFetcher{records: []map[string]any{
		brandRecord(float64(1), "B1"),
		brandRecord(float64(2), "B2"),
		brandRecord(float64(3), "B3"),
	}}
	engine := New(store, fetcher, brandMapping)

	entries, err := engine.BuildView(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, ReconciledEntry{ExternalID: 1, Name: "B1", Image: "b1.png", Present: true, Status: StatusSaved}, entries[0])
	// Remote name wins; local image wins.
	assert.Equal(t, ReconciledEntry{ExternalID: 2, Name: "B2", Image: "b2.png", Present: true, Status: StatusSaved}, entries[1])
	assert.Equal(t, ReconciledEntry{ExternalID: 3, Name: "B3", Present: false, Status: StatusNotSaved}, entries[2])
}

func TestEngine_BuildView_GradesCompleteness(t *testing.T) {
	store := newFakeStore()
	store.rows[1] = &fakeRow{Name: "Full", Complete: true}
	store.rows[2] = &fakeRow{Name: "Partial", Complete: false}

	fetcher := &fakeFetcher{records: []map[string]any{
		{"idproducto": float64(1), "nombreproducto": "Full"},
		{"idproducto": float64(2), "nombreproducto": "Partial"},
		{"idproducto": float64(3), "nombreproducto": "Missing"},
	}}
	engine := New(store, fetcher, Mapping{
		Kind:              "products",
		IDField:           "idproducto",
		NameField:         "nombreproducto",
		GradeCompleteness: true,
	})

	entries, err := engine.BuildView(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, StatusComplete, entries[0].Status)
	assert.Equal(t, StatusIncomplete, entries[1].Status)
	assert.Equal(t, StatusNotSaved, entries[2].Status)
}

func TestEngine_BuildView_SkipsUndecodableRecords(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{records: []map[string]any{
		brandRecord("oops", "Bad"),
		brandRecord(float64(5), "Good"),
	}}
	engine := New(store, fetcher, brandMapping)

	entries, err := engine.BuildView(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].ExternalID)
}

func TestEngine_BuildView_PerformsNoWrites(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{records: []map[string]any{brandRecord(float64(1), "One")}}
	engine := New(store, fetcher, brandMapping)

	_, err := engine.BuildView(context.Background())
	require.NoError(t, err)
	assert.Zero(t, store.upsertCnt)
	assert.Equal(t, 1, store.listAllCnt)
}

func TestCoerceID(t *testing.T) {
	cases := []struct {
		in      any
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{float64(42), 42, false},
		{int(3), 3, false},
		{int64(9000), 9000, false},
		{float64(3.5), 0, true},
		{"", 0, true},
		{"seven", 0, true},
		{nil, 0, true},
		{float64(-1), 0, true},
		{true, 0, true},
	}

	for _, tc := range cases {
		got, err := coerceID(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %v", tc.in)
		} else {
			require.NoError(t, err, "input %v", tc.in)
			assert.Equal(t, tc.want, got)
		}
	}
}
