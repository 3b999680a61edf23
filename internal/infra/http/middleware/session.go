package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/infra/identity"
)

const SessionCookieName = "ss_session"

type SessionVerifier interface {
	Verify(ctx context.Context, raw string) (*identity.Session, error)
}

// SessionHandlerFunc is an admin handler. It only runs with a verified
// session, which it receives as an argument.
type SessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session *identity.Session)

// Authenticated resolves the caller's session once and hands it to fn.
// Requests without a valid session get 401 and fn is not called.
func Authenticated(v SessionVerifier, logger zerolog.Logger, fn SessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := SessionToken(r)
		if raw == "" {
			unauthorized(w)
			return
		}

		session, err := v.Verify(r.Context(), raw)
		if err != nil {
			logger.Warn().Err(err).Str("path", r.URL.Path).Msg("session rejected")
			unauthorized(w)
			return
		}

		fn(w, r, session)
	}
}

// SessionToken reads the ID token from the Authorization header, falling
// back to the session cookie.
func SessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
