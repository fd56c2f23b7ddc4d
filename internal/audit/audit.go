// Package audit archives raw vendor API payloads to disk so a failed or
// surprising sync pass can be replayed against the exact data the vendor
// returned.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Snapshot is what gets written per fetch: the kind the records belong to,
// when they were fetched, and the raw records themselves.
type Snapshot struct {
	Kind      string           `json:"kind"`
	FetchedAt time.Time        `json:"fetched_at"`
	Count     int              `json:"count"`
	Records   []map[string]any `json:"records"`
}

// SavePayload archives one fetched vendor payload and returns the filename it
// was written to. Filenames are <kind>_<uuid>.json so snapshots of the same
// fetch never collide.
func (a *Auditor) SavePayload(kind string, records []map[string]any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	snap := Snapshot{
		Kind:      kind,
		FetchedAt: time.Now().UTC(),
		Count:     len(records),
		Records:   records,
	}

	jsonData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", kind, uuid.New().String())
	if err := os.WriteFile(filepath.Join(a.AuditDir, filename), jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
