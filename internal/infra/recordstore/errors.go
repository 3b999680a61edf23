package recordstore

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotConfigured is returned before any network call when a required
// connection setting is empty.
var ErrNotConfigured = errors.New("record store not configured")

// UpstreamError is a non-2xx answer from the record store. Type carries the
// store's own error type (INVALID_PERMISSIONS, INVALID_FIELD, ...) when the
// body had one.
type UpstreamError struct {
	Status  int
	Type    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("airtable: %s (status %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("airtable: status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) IsPermission() bool {
	return e.Status == http.StatusForbidden || strings.HasPrefix(e.Type, "INVALID_PERMISSIONS")
}

func (e *UpstreamError) IsSchema() bool {
	switch e.Type {
	case "INVALID_BASE", "INVALID_TABLE", "TABLE_NOT_FOUND":
		return true
	}
	return false
}

func (e *UpstreamError) IsField() bool {
	switch e.Type {
	case "INVALID_FIELD", "UNKNOWN_FIELD_NAME", "INVALID_VALUE_FOR_COLUMN", "INVALID_MULTIPLE_CHOICE_OPTIONS":
		return true
	}
	return false
}

// IsNotFound reports a missing record. The store answers 404 for an unknown
// record id in an otherwise valid table.
func (e *UpstreamError) IsNotFound() bool {
	if e.Type == "NOT_FOUND" || e.Type == "MODEL_ID_NOT_FOUND" {
		return true
	}
	return e.Status == http.StatusNotFound && e.Type == ""
}

// Category names the failure family for callers and logs.
func (e *UpstreamError) Category() string {
	switch {
	case e.IsPermission():
		return "permission"
	case e.IsSchema():
		return "schema"
	case e.IsField():
		return "field"
	case e.IsNotFound():
		return "not_found"
	}
	return "unknown"
}

func IsNotFound(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.IsNotFound()
}
