package vendorapi

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the vendor API URL or credentials are missing.
// It is returned before any network call is made.
var ErrNotConfigured = errors.New("vendor API is not configured: endpoint URL, username and password are required")

// ErrInvalidCredentials indicates the vendor rejected the Basic auth credentials.
var ErrInvalidCredentials = errors.New("vendor API rejected the configured credentials")

// StatusError represents a non-2xx response from the vendor API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vendor API error: HTTP %d", e.StatusCode)
}

// MalformedResponseError indicates the vendor body did not decode into an
// object carrying the expected array field.
type MalformedResponseError struct {
	Field  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("vendor API returned a malformed response: %s (expected object with %q array)", e.Reason, e.Field)
}
