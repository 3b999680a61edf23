package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/usecase"
)

const stateCookieName = "ss_auth_state"

type LoginFlow interface {
	Configured() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, *identity.Session, error)
	LogoutURL(returnTo string) string
}

// AuthHandler runs the hosted login for the back office and keeps the
// resulting ID token in the session cookie.
type AuthHandler struct {
	Auth          LoginFlow
	BaseURL       string
	SecureCookies bool
}

func NewAuthHandler(auth LoginFlow, baseURL string, secureCookies bool) *AuthHandler {
	return &AuthHandler{Auth: auth, BaseURL: baseURL, SecureCookies: secureCookies}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.Configured() {
		writeError(w, r, identity.ErrNotConfigured)
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.Auth.AuthCodeURL(state), http.StatusFound)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("error") != "" {
		reqLogger(r).Warn().Str("error", q.Get("error")).Str("description", q.Get("error_description")).Msg("login refused")
		writeError(w, r, &usecase.Error{Kind: usecase.KindUnauthorized, Message: "login was not completed"})
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != q.Get("state") {
		writeError(w, r, &usecase.Error{Kind: usecase.KindUnauthorized, Message: "login state mismatch"})
		return
	}
	h.clearCookie(w, stateCookieName, "/auth")

	idToken, session, err := h.Auth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    idToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	reqLogger(r).Info().Str("admin", session.Subject).Msg("admin signed in")
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, middleware.SessionCookieName, "/")
	http.Redirect(w, r, h.Auth.LogoutURL(h.BaseURL+"/"), http.StatusFound)
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
