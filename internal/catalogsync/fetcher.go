package catalogsync

import (
	"context"
	"log"

	"github.com/svaldez/catalog-admin/internal/vendorapi"
)

// VendorFetcher adapts a vendorapi.Client plus one endpoint configuration to
// the Fetcher interface. The endpoint is validated on every call (lazily), so
// a deployment without vendor credentials starts fine and only sync requests
// fail.
type VendorFetcher struct {
	client *vendorapi.Client
	cfg    vendorapi.EndpointConfig
}

// NewVendorFetcher creates a Fetcher reading from one vendor endpoint.
func NewVendorFetcher(client *vendorapi.Client, cfg vendorapi.EndpointConfig) *VendorFetcher {
	return &VendorFetcher{client: client, cfg: cfg}
}

// FetchRecords implements Fetcher.
func (f *VendorFetcher) FetchRecords(ctx context.Context) ([]map[string]any, error) {
	return f.client.FetchRecords(ctx, f.cfg)
}

// PayloadArchiver persists a raw fetched payload for later inspection.
type PayloadArchiver interface {
	SavePayload(kind string, records []map[string]any) (string, error)
}

// ArchivingFetcher wraps a Fetcher and archives every successfully fetched
// payload. Archiving failures are logged but never fail the fetch: losing a
// snapshot must not cost a sync pass.
type ArchivingFetcher struct {
	inner    Fetcher
	kind     string
	archiver PayloadArchiver
}

func NewArchivingFetcher(inner Fetcher, kind string, archiver PayloadArchiver) *ArchivingFetcher {
	return &ArchivingFetcher{inner: inner, kind: kind, archiver: archiver}
}

// FetchRecords implements Fetcher.
func (f *ArchivingFetcher) FetchRecords(ctx context.Context) ([]map[string]any, error) {
	records, err := f.inner.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	if filename, archiveErr := f.archiver.SavePayload(f.kind, records); archiveErr != nil {
		log.Printf("Catalog sync (%s): failed to archive vendor payload: %v", f.kind, archiveErr)
	} else {
		log.Printf("Catalog sync (%s): archived vendor payload to %s", f.kind, filename)
	}
	return records, nil
}
