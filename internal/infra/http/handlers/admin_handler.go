package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/usecase"
)

// AdminHandler serves the lead and referrer views of the back office. Every
// method runs behind middleware.Authenticated.
type AdminHandler struct {
	RecordsUC    RecordsLister
	ReferrersUC  ReferrersLister
	LeadStatusUC LeadStatusUpdater
}

func NewAdminHandler(records RecordsLister, referrers ReferrersLister, leadStatus LeadStatusUpdater) *AdminHandler {
	return &AdminHandler{RecordsUC: records, ReferrersUC: referrers, LeadStatusUC: leadStatus}
}

func (h *AdminHandler) ListRecords(w http.ResponseWriter, r *http.Request, _ *identity.Session) {
	output, err := h.RecordsUC.Execute(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *AdminHandler) ListReferrers(w http.ResponseWriter, r *http.Request, _ *identity.Session) {
	output, err := h.ReferrersUC.Execute(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request, session *identity.Session) {
	var input usecase.LeadStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	lead, err := h.LeadStatusUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logFor(r, session).Info().Str("lead_id", lead.ID).Str("status", string(lead.Status)).Msg("lead status set")
	writeJSON(w, http.StatusOK, lead)
}
