package entity

import (
	"context"
	"time"
)

type Event struct {
	ID             string
	TypeOfEvent    EventType
	EventDate      time.Time
	Adults         int
	Children       int
	Status         EventStatus
	Notes          string
	FinancialNotes string
	// LeadIDs holds the linked lead. It always has exactly one element for
	// events created here and is never rewritten after creation.
	LeadIDs []string
}

// LeadID returns the linked lead, or "" when the store returned none.
func (e Event) LeadID() string {
	if len(e.LeadIDs) == 0 {
		return ""
	}
	return e.LeadIDs[0]
}

// EventPatch carries the fields of a partial update. Nil means untouched.
type EventPatch struct {
	TypeOfEvent    *EventType
	EventDate      *time.Time
	Adults         *int
	Children       *int
	Status         *EventStatus
	Notes          *string
	FinancialNotes *string
}

func (p EventPatch) IsEmpty() bool {
	return p.TypeOfEvent == nil && p.EventDate == nil && p.Adults == nil &&
		p.Children == nil && p.Status == nil && p.Notes == nil && p.FinancialNotes == nil
}

type EventRepositoryInterface interface {
	List(ctx context.Context, leadID string) ([]Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
}
