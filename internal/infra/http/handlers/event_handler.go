package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
	"github.com/saltandserenity/booking/internal/usecase"
)

// EventJSON is an event as the back office reads it: the record id plus
// its fields under their table column names.
type EventJSON struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

func toEventJSON(e entity.Event) EventJSON {
	return EventJSON{ID: e.ID, Fields: recordstore.EventFields(e)}
}

type EventHandler struct {
	Events EventService
}

func NewEventHandler(events EventService) *EventHandler {
	return &EventHandler{Events: events}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request, _ *identity.Session) {
	events, err := h.Events.List(r.Context(), r.URL.Query().Get("leadId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]EventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, toEventJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, session *identity.Session) {
	var input usecase.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	event, err := h.Events.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.RecordEventWrite("create")
	logFor(r, session).Info().Str("event_id", event.ID).Msg("event created")
	writeJSON(w, http.StatusOK, toEventJSON(*event))
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, session *identity.Session) {
	var input usecase.UpdateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w, r, err)
		return
	}

	event, err := h.Events.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.RecordEventWrite("update")
	logFor(r, session).Info().Str("event_id", event.ID).Msg("event updated")
	writeJSON(w, http.StatusOK, toEventJSON(*event))
}

// logFor returns the request logger tagged with the acting admin.
func logFor(r *http.Request, session *identity.Session) *zerolog.Logger {
	l := reqLogger(r).With().Str("admin", session.Subject).Logger()
	return &l
}
