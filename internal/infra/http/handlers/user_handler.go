package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/usecase"
)

type UserHandler struct {
	Users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ *identity.Session) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Invite(w http.ResponseWriter, r *http.Request, session *identity.Session) {
	var input usecase.InviteUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	output, err := h.Users.Invite(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if output.EmailWarning != "" {
		middleware.RecordNotificationWarning("admin_invite")
	}
	logFor(r, session).Info().Str("user_id", output.User.UserID).Msg("admin invited")
	writeJSON(w, http.StatusOK, output)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, session *identity.Session) {
	var input usecase.DeleteUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	if err := h.Users.Delete(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}

	logFor(r, session).Info().Str("user_id", input.UserID).Msg("admin deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
