package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
)

type EventUseCase struct {
	Events entity.EventRepositoryInterface
	Leads  entity.LeadRepositoryInterface
	logger zerolog.Logger
}

func NewEventUseCase(events entity.EventRepositoryInterface, leads entity.LeadRepositoryInterface, logger zerolog.Logger) *EventUseCase {
	return &EventUseCase{
		Events: events,
		Leads:  leads,
		logger: logger.With().Str("usecase", "events").Logger(),
	}
}

// List returns the events linked to leadID, or every event when leadID is
// empty.
func (uc *EventUseCase) List(ctx context.Context, leadID string) ([]entity.Event, error) {
	events, err := uc.Events.List(ctx, strings.TrimSpace(leadID))
	if err != nil {
		return nil, Translate(err)
	}
	if events == nil {
		events = []entity.Event{}
	}
	return events, nil
}

func (uc *EventUseCase) Create(ctx context.Context, input CreateEventInput) (*entity.Event, error) {
	event, errs := buildEvent(input)
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	// The lead must exist before anything is written.
	if _, err := uc.Leads.Get(ctx, event.LeadID()); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, &Error{Kind: KindLeadNotFound, Message: "lead " + event.LeadID() + " does not exist", Field: "leadId", Err: err}
		}
		return nil, Translate(err)
	}

	if err := uc.Events.Create(ctx, event); err != nil {
		return nil, Translate(err)
	}
	uc.logger.Info().Str("event_id", event.ID).Str("lead_id", event.LeadID()).Msg("event created")
	return event, nil
}

func (uc *EventUseCase) Update(ctx context.Context, id string, input UpdateEventInput) (*entity.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid([]ValidationError{{"id", "is required"}})
	}

	patch, errs := buildEventPatch(input)
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	event, err := uc.Events.Update(ctx, id, patch)
	if err != nil {
		return nil, Translate(err)
	}
	uc.logger.Info().Str("event_id", id).Msg("event updated")
	return event, nil
}

func buildEvent(input CreateEventInput) (*entity.Event, []ValidationError) {
	var errs []ValidationError
	event := &entity.Event{
		Adults:         input.NumberOfAdults,
		Children:       input.NumberOfChildren,
		Status:         entity.EventStatusNew,
		Notes:          input.Notes,
		FinancialNotes: input.FinancialNotes,
	}

	if t := strings.TrimSpace(input.TypeOfEvent); t == "" {
		errs = append(errs, ValidationError{"typeOfEvent", "is required"})
	} else if et, err := entity.ParseEventType(t); err != nil {
		errs = append(errs, ValidationError{"typeOfEvent", "is not a known event type"})
	} else {
		event.TypeOfEvent = et
	}

	if d := strings.TrimSpace(input.DateOfEvent); d == "" {
		errs = append(errs, ValidationError{"dateOfEvent", "is required"})
	} else if date, err := ParseEventDate(d); err != nil {
		errs = append(errs, ValidationError{"dateOfEvent", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"})
	} else {
		event.EventDate = date
	}

	if leadID := strings.TrimSpace(input.LeadID); leadID == "" {
		errs = append(errs, ValidationError{"leadId", "is required"})
	} else {
		event.LeadIDs = []string{leadID}
	}

	if s := strings.TrimSpace(input.Status); s != "" {
		if status, err := entity.ParseEventStatus(s); err != nil {
			errs = append(errs, ValidationError{"status", "must be New or Scheduled"})
		} else {
			event.Status = status
		}
	}

	if input.NumberOfAdults < 0 {
		errs = append(errs, ValidationError{"numberOfAdults", "must not be negative"})
	}
	if input.NumberOfChildren < 0 {
		errs = append(errs, ValidationError{"numberOfChildren", "must not be negative"})
	}

	return event, errs
}

func buildEventPatch(input UpdateEventInput) (entity.EventPatch, []ValidationError) {
	var errs []ValidationError
	var patch entity.EventPatch

	if input.LeadID != nil {
		errs = append(errs, ValidationError{"leadId", "cannot be changed"})
	}

	if input.TypeOfEvent != nil {
		if et, err := entity.ParseEventType(strings.TrimSpace(*input.TypeOfEvent)); err != nil {
			errs = append(errs, ValidationError{"typeOfEvent", "is not a known event type"})
		} else {
			patch.TypeOfEvent = &et
		}
	}
	if input.DateOfEvent != nil {
		if date, err := ParseEventDate(strings.TrimSpace(*input.DateOfEvent)); err != nil {
			errs = append(errs, ValidationError{"dateOfEvent", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"})
		} else {
			patch.EventDate = &date
		}
	}
	if input.Status != nil {
		if status, err := entity.ParseEventStatus(strings.TrimSpace(*input.Status)); err != nil {
			errs = append(errs, ValidationError{"status", "must be New or Scheduled"})
		} else {
			patch.Status = &status
		}
	}
	if input.NumberOfAdults != nil {
		if *input.NumberOfAdults < 0 {
			errs = append(errs, ValidationError{"numberOfAdults", "must not be negative"})
		} else {
			patch.Adults = input.NumberOfAdults
		}
	}
	if input.NumberOfChildren != nil {
		if *input.NumberOfChildren < 0 {
			errs = append(errs, ValidationError{"numberOfChildren", "must not be negative"})
		} else {
			patch.Children = input.NumberOfChildren
		}
	}
	patch.Notes = input.Notes
	patch.FinancialNotes = input.FinancialNotes

	if len(errs) == 0 && patch.IsEmpty() {
		errs = append(errs, ValidationError{"fields", "at least one field must be provided"})
	}
	return patch, errs
}
