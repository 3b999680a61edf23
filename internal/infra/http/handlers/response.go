package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
	"github.com/saltandserenity/booking/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusFor(e *usecase.Error) int {
	switch e.Kind {
	case usecase.KindValidation, usecase.KindLeadNotFound, usecase.KindLastUserProtected:
		return http.StatusBadRequest
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindAuthBackendUnavailable:
		return http.StatusBadGateway
	case usecase.KindUpstream:
		// The backing service rejected the request it was sent.
		if e.UpstreamStatus >= 400 && e.UpstreamStatus < 500 {
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// writeError is the single place errors become HTTP responses. The
// underlying cause is logged; only the translated message is returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ucErr *usecase.Error
	if !errors.As(usecase.Translate(err), &ucErr) {
		ucErr = &usecase.Error{Kind: usecase.KindUpstream, Message: "internal error", Err: err}
	}
	status := statusFor(ucErr)

	logger := reqLogger(r)
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("code", string(ucErr.Kind)).Int("status", status).Msg("request failed")

	if service := integrationService(err); service != "" && status >= http.StatusInternalServerError {
		middleware.RecordIntegrationError(service)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   ucErr.Message,
		Code:    string(ucErr.Kind),
		Details: ucErr.Details,
		Field:   ucErr.Field,
	})
}

func integrationService(err error) string {
	var storeErr *recordstore.UpstreamError
	var idErr *identity.UpstreamError
	switch {
	case errors.As(err, &storeErr), errors.Is(err, recordstore.ErrNotConfigured):
		return "airtable"
	case errors.As(err, &idErr), errors.Is(err, identity.ErrAuthBackendUnavailable), errors.Is(err, identity.ErrNotConfigured):
		return "auth0"
	}
	return ""
}

func badJSON(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, &usecase.Error{Kind: usecase.KindValidation, Message: "invalid JSON body", Err: err})
}

func reqLogger(r *http.Request) *zerolog.Logger {
	return zerolog.Ctx(r.Context())
}
