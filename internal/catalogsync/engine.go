// Package catalogsync reconciles the vendor catalog with the local store.
//
// One Engine instance serves one entity kind (brands or products). The
// per-kind differences (which keys carry the external id and display name,
// and whether the reconciled view grades completeness) live in a Mapping, so
// the sync and join logic is written once.
//
// A sync pass is idempotent: running it twice against the same remote set
// leaves the store unchanged after the second run. Per-record problems
// (invalid records, row-level store failures) are absorbed into the Report
// counters and never abort the batch; only environment-level failures (vendor
// unreachable, store connection gone) fail the pass as a whole.
package catalogsync

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrStoreUnavailable marks a store error as a connectivity failure rather
// than a row-level one. Stores wrap with it when the database itself is gone;
// the engine escalates it to a pass-level failure.
var ErrStoreUnavailable = errors.New("store unavailable")

// Mapping configures the Engine for one entity kind.
type Mapping struct {
	Kind              string // "brands" or "products", used in logs and reports
	IDField           string // vendor key carrying the external id, e.g. "idmarca"
	NameField         string // vendor key carrying the display name, e.g. "denominacion"
	GradeCompleteness bool   // products grade complete/incomplete, brands only saved/not_saved
}

// Record is one validated remote record. Attributes holds the full raw vendor
// object so stores can pick up kind-specific fields (prices, VAT) without the
// engine knowing about them.
type Record struct {
	ExternalID int64
	Name       string
	Attributes map[string]any
}

// LocalSummary is the store's projection of one local row for the reconciled
// view.
type LocalSummary struct {
	ExternalID int64
	Name       string
	Image      string
	Complete   bool
}

// Store is the persistence the engine writes through. Upsert must be atomic
// per external id: two concurrent passes racing on the same id must resolve
// via the store's own conflict handling, never produce a duplicate row.
type Store interface {
	Upsert(ctx context.Context, rec Record) (created bool, err error)
	ListAll(ctx context.Context) ([]LocalSummary, error)
}

// Fetcher obtains the raw remote record set for the engine's entity kind.
type Fetcher interface {
	FetchRecords(ctx context.Context) ([]map[string]any, error)
}

// RecordError describes one record that could not be upserted.
type RecordError struct {
	ExternalID int64  `json:"external_id,omitempty"`
	Reason     string `json:"reason"`
}

// Report aggregates the outcome of one sync pass. Skipped and Failed are
// per-record outcomes, not errors: a pass with failures still returns
// normally.
type Report struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
	Errors  []RecordError `json:"errors,omitempty"`
}

// Processed returns the number of records that reached the store.
func (r Report) Processed() int {
	return r.Created + r.Updated
}

// Engine merges remote record sets into the local store and derives the
// reconciled view. Dependencies are injected at construction so the engine
// can be exercised against fakes.
type Engine struct {
	store   Store
	fetcher Fetcher
	mapping Mapping
}

// New creates an Engine for one entity kind.
func New(store Store, fetcher Fetcher, mapping Mapping) *Engine {
	return &Engine{store: store, fetcher: fetcher, mapping: mapping}
}

// Kind returns the entity kind this engine serves.
func (e *Engine) Kind() string {
	return e.mapping.Kind
}

// Sync fetches the remote set and runs SyncBatch over it.
func (e *Engine) Sync(ctx context.Context) (Report, error) {
	raw, err := e.fetcher.FetchRecords(ctx)
	if err != nil {
		return Report{}, err
	}
	return e.SyncBatch(ctx, raw)
}

// SyncBatch upserts every valid remote record independently. Invalid records
// are skipped, row-level upsert failures are counted and logged, and neither
// aborts the rest of the batch. The returned error is non-nil only for
// pass-level failures, in which case the Report is zero.
func (e *Engine) SyncBatch(ctx context.Context, raw []map[string]any) (Report, error) {
	var report Report

	for _, obj := range raw {
		rec, err := e.decode(obj)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RecordError{ExternalID: rec.ExternalID, Reason: err.Error()})
			log.Printf("Catalog sync (%s): skipping invalid record: %v", e.mapping.Kind, err)
			continue
		}

		created, err := e.store.Upsert(ctx, rec)
		if err != nil {
			if isFatalStoreError(err) {
				return Report{}, fmt.Errorf("%s sync aborted: %w", e.mapping.Kind, err)
			}
			report.Failed++
			report.Errors = append(report.Errors, RecordError{ExternalID: rec.ExternalID, Reason: err.Error()})
			log.Printf("Catalog sync (%s): failed to upsert record %d: %v", e.mapping.Kind, rec.ExternalID, err)
			continue
		}

		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	return report, nil
}

// decode extracts and validates the identity fields from one raw vendor
// object. The vendor serializes external ids inconsistently (sometimes JSON
// numbers, sometimes numeric strings), so both are accepted.
func (e *Engine) decode(obj map[string]any) (Record, error) {
	id, err := coerceID(obj[e.mapping.IDField])
	if err != nil {
		return Record{}, fmt.Errorf("field %q: %w", e.mapping.IDField, err)
	}

	name, _ := obj[e.mapping.NameField].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{ExternalID: id}, fmt.Errorf("field %q: display name is missing", e.mapping.NameField)
	}

	return Record{ExternalID: id, Name: name, Attributes: obj}, nil
}

func coerceID(v any) (int64, error) {
	switch id := v.(type) {
	case nil:
		return 0, errors.New("external id is missing")
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("external id %q is not a positive integer", id)
		}
		return n, nil
	case float64:
		if id != math.Trunc(id) || id <= 0 {
			return 0, fmt.Errorf("external id %v is not a positive integer", id)
		}
		return int64(id), nil
	case int:
		if id <= 0 {
			return 0, fmt.Errorf("external id %d is not a positive integer", id)
		}
		return int64(id), nil
	case int64:
		if id <= 0 {
			return 0, fmt.Errorf("external id %d is not a positive integer", id)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("external id has unsupported type %T", v)
	}
}

// isFatalStoreError separates environment-level store failures from row-level
// ones. Constraint violations stay per-record; a dead connection or an
// expired context means the rest of the batch cannot succeed either.
func isFatalStoreError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
