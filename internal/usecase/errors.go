package usecase

import (
	"errors"
	"fmt"

	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
)

type Kind string

const (
	KindValidation             Kind = "ValidationError"
	KindUnauthorized           Kind = "Unauthorized"
	KindNotFound               Kind = "NotFound"
	KindLeadNotFound           Kind = "LeadNotFound"
	KindLastUserProtected      Kind = "LastUserProtected"
	KindUpstream               Kind = "UpstreamError"
	KindNotConfigured          Kind = "NotConfigured"
	KindRoleNotFound           Kind = "RoleNotFound"
	KindAuthBackendUnavailable Kind = "AuthBackendUnavailable"
)

// Error is the only error type that leaves the use case layer. Message is
// safe to show to the caller; Details is an optional operator hint.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Field   string
	// UpstreamStatus is the status code returned by the backing service,
	// zero when the failure never reached it.
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Translate maps an adapter error onto the taxonomy. Raw upstream bodies
// stay in Err and are never copied into Message or Details.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, recordstore.ErrNotConfigured), errors.Is(err, identity.ErrNotConfigured):
		return &Error{Kind: KindNotConfigured, Message: "service is not configured", Details: err.Error(), Err: err}
	case errors.Is(err, identity.ErrAuthBackendUnavailable):
		return &Error{Kind: KindAuthBackendUnavailable, Message: "identity provider is unavailable", Err: err}
	case errors.Is(err, identity.ErrRoleNotFound):
		return &Error{Kind: KindRoleNotFound, Message: "admin role is missing in the identity provider", Err: err}
	case errors.Is(err, identity.ErrLastUserProtected):
		return &Error{Kind: KindLastUserProtected, Message: "cannot delete the last admin user", Err: err}
	case errors.Is(err, identity.ErrNoSession), errors.Is(err, identity.ErrInvalidSession):
		return &Error{Kind: KindUnauthorized, Message: "unauthorized", Err: err}
	}

	var storeErr *recordstore.UpstreamError
	if errors.As(err, &storeErr) {
		if storeErr.IsNotFound() {
			return &Error{Kind: KindNotFound, Message: "record not found", UpstreamStatus: storeErr.Status, Err: err}
		}
		return &Error{
			Kind:           KindUpstream,
			Message:        "record store request failed",
			Details:        storeHint(storeErr),
			UpstreamStatus: storeErr.Status,
			Err:            err,
		}
	}

	var idErr *identity.UpstreamError
	if errors.As(err, &idErr) {
		return &Error{
			Kind:           KindUpstream,
			Message:        "identity provider request failed",
			Details:        idErr.Op,
			UpstreamStatus: idErr.Status,
			Err:            err,
		}
	}

	return &Error{Kind: KindUpstream, Message: "internal error", Err: err}
}

func storeHint(e *recordstore.UpstreamError) string {
	switch e.Category() {
	case "permission":
		return "the API key has no access to this base or table"
	case "schema":
		return "check AIRTABLE_BASE_ID and the configured table names"
	case "field":
		return "a field name or value does not match the table: " + e.Type
	}
	return ""
}
