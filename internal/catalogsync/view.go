package catalogsync

import "context"

type Status string

const (
	StatusSaved      Status = "saved"
	StatusNotSaved   Status = "not_saved"
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// ReconciledEntry is one row of the remote-keyed report joining the vendor
// catalog against the local store. It is derived on every read and never
// persisted.
type ReconciledEntry struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	Present    bool   `json:"present"`
	Status     Status `json:"status"`
}

// BuildView fetches the remote set, loads the local set and joins them on the
// external id. The report is keyed by the remote catalog: records present
// only locally are omitted, records present only remotely appear with
// Present=false. The remote name wins; the local image wins.
//
// BuildView performs no writes. Callers wanting sync-then-report semantics
// run Sync first and then BuildView; the two are deliberately separate so a
// read endpoint never mutates the store.
func (e *Engine) BuildView(ctx context.Context) ([]ReconciledEntry, error) {
	raw, err := e.fetcher.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	locals, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byExternalID := make(map[int64]LocalSummary, len(locals))
	for _, l := range locals {
		byExternalID[l.ExternalID] = l
	}

	entries := make([]ReconciledEntry, 0, len(raw))
	for _, obj := range raw {
		rec, err := e.decode(obj)
		if err != nil {
			// Records too malformed to carry a key cannot be joined;
			// they are sync's problem (counted there), not the report's.
			continue
		}

		local, present := byExternalID[rec.ExternalID]
		entry := ReconciledEntry{
			ExternalID: rec.ExternalID,
			Name:       rec.Name,
			Present:    present,
			Status:     e.status(local, present),
		}
		if present {
			entry.Image = local.Image
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (e *Engine) status(local LocalSummary, present bool) Status {
	if !present {
		return StatusNotSaved
	}
	if !e.mapping.GradeCompleteness {
		return StatusSaved
	}
	if local.Complete {
		return StatusComplete
	}
	return StatusIncomplete
}
