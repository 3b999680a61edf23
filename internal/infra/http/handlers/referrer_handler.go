package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/usecase"
)

type ReferrerHandler struct {
	SignupUC ReferrerSignup
	GetUC    ReferrerFinder
}

func NewReferrerHandler(signup ReferrerSignup, get ReferrerFinder) *ReferrerHandler {
	return &ReferrerHandler{SignupUC: signup, GetUC: get}
}

func (h *ReferrerHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReferrerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	output, err := h.SignupUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.RecordReferrer()
	if output.Warning != "" {
		middleware.RecordNotificationWarning("referrer_signup")
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *ReferrerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	output, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
