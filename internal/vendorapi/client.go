// Package vendorapi fetches catalog records from the external vendor API.
//
// The vendor exposes one Basic-auth JSON endpoint per entity kind. Responses
// are objects wrapping an array under a per-kind field name ("result" for
// brands, "detProducto" for products), so the field name is part of the
// endpoint configuration rather than hardcoded here.
//
// The client performs exactly one request per call and never retries; a sync
// pass is idempotent, so retrying is the caller's decision.
package vendorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// EndpointConfig describes one vendor endpoint. All of URL, Username and
// Password are required; ResultField names the array field in the response
// body.
type EndpointConfig struct {
	URL         string
	Username    string
	Password    string
	ResultField string
}

// Validate reports whether the endpoint is usable. Called before any network
// I/O so a misconfigured deployment fails fast with a clear error.
func (c EndpointConfig) Validate() error {
	if c.URL == "" || c.Username == "" || c.Password == "" {
		return ErrNotConfigured
	}
	return nil
}

// Client issues authenticated reads against the vendor catalog API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a vendor API client with the default request timeout.
func NewClient() *Client {
	return NewClientWithTimeout(defaultTimeout)
}

// NewClientWithTimeout creates a vendor API client with a custom timeout.
// A zero timeout falls back to the default; the vendor endpoint must never be
// able to hang a reconciliation pass indefinitely.
func NewClientWithTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRecords performs a single authenticated GET against the endpoint and
// returns the raw objects found under cfg.ResultField.
//
// Failure modes:
//   - ErrNotConfigured when URL or credentials are missing (no I/O performed)
//   - ErrInvalidCredentials on HTTP 401/403
//   - *StatusError on any other non-2xx response
//   - *MalformedResponseError when the body is not an object wrapping an
//     array of objects under cfg.ResultField
func (c *Client) FetchRecords(ctx context.Context, cfg EndpointConfig) ([]map[string]any, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(cfg.Username, cfg.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendor API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &MalformedResponseError{Field: cfg.ResultField, Reason: "body is not a JSON object"}
	}

	raw, ok := body[cfg.ResultField]
	if !ok {
		return nil, &MalformedResponseError{Field: cfg.ResultField, Reason: "result field is missing"}
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &MalformedResponseError{Field: cfg.ResultField, Reason: "result field is not an array of objects"}
	}

	return records, nil
}
