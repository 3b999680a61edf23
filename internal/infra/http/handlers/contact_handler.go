package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/usecase"
)

type ContactHandler struct {
	SubmitContactUC ContactSubmitter
}

func NewContactHandler(uc ContactSubmitter) *ContactHandler {
	return &ContactHandler{SubmitContactUC: uc}
}

func (h *ContactHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	output, err := h.SubmitContactUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.RecordLead(output.ReferrerID != "")
	if output.Warning != "" {
		middleware.RecordNotificationWarning("contact")
	}
	writeJSON(w, http.StatusOK, output)
}
