package identity

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured          = errors.New("identity provider not configured")
	ErrAuthBackendUnavailable = errors.New("identity provider token exchange failed")
	ErrRoleNotFound           = errors.New("admin role not found")
	ErrLastUserProtected      = errors.New("cannot delete the last user")
	ErrNoSession              = errors.New("no session")
	ErrInvalidSession         = errors.New("invalid session")
)

// UpstreamError is a non-2xx answer from the management API.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("auth0: %s failed (status %d): %s", e.Op, e.Status, e.Message)
}
