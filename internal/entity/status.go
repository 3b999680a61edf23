package entity

import (
	"errors"
	"fmt"
)

// ErrUnknownValue is returned when input names a value outside an enum.
var ErrUnknownValue = errors.New("unknown value")

// The enums below are closed sets. Values read from the record store are
// kept verbatim even when they fall outside the set, so a record edited by
// hand never breaks a listing. IsKnown tells the two cases apart, and the
// Parse functions are used wherever input is accepted.

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusBooked    LeadStatus = "Booked"
)

func (s LeadStatus) IsKnown() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusBooked:
		return true
	}
	return false
}

func (s LeadStatus) rank() int {
	switch s {
	case LeadStatusNew:
		return 0
	case LeadStatusContacted:
		return 1
	case LeadStatusBooked:
		return 2
	}
	return -1
}

// CanMoveTo reports whether an admin may set next on a lead currently in s.
// Leads only move forward (New, Contacted, Booked). A lead carrying a value
// from outside the set may be moved to any known status.
func (s LeadStatus) CanMoveTo(next LeadStatus) bool {
	if !next.IsKnown() {
		return false
	}
	if !s.IsKnown() {
		return true
	}
	return next.rank() >= s.rank()
}

func ParseLeadStatus(v string) (LeadStatus, error) {
	s := LeadStatus(v)
	if !s.IsKnown() {
		return "", fmt.Errorf("lead status %q: %w", v, ErrUnknownValue)
	}
	return s, nil
}

type ContactMethod string

const (
	ContactMethodEmail ContactMethod = "Email Me"
	ContactMethodText  ContactMethod = "Text Me"
	ContactMethodCall  ContactMethod = "Call Me"
)

func (m ContactMethod) IsKnown() bool {
	switch m {
	case ContactMethodEmail, ContactMethodText, ContactMethodCall:
		return true
	}
	return false
}

func ParseContactMethod(v string) (ContactMethod, error) {
	m := ContactMethod(v)
	if !m.IsKnown() {
		return "", fmt.Errorf("contact method %q: %w", v, ErrUnknownValue)
	}
	return m, nil
}

type EventType string

const (
	EventTypeDrinks   EventType = "Drinks and Appetizers"
	EventTypeDinner   EventType = "Dinner"
	EventTypeCatered  EventType = "Catered"
	EventTypeMealPlan EventType = "Meal Plan"
	EventTypeCustom   EventType = "Custom"
)

func (t EventType) IsKnown() bool {
	switch t {
	case EventTypeDrinks, EventTypeDinner, EventTypeCatered, EventTypeMealPlan, EventTypeCustom:
		return true
	}
	return false
}

func ParseEventType(v string) (EventType, error) {
	t := EventType(v)
	if !t.IsKnown() {
		return "", fmt.Errorf("event type %q: %w", v, ErrUnknownValue)
	}
	return t, nil
}

type EventStatus string

const (
	EventStatusNew       EventStatus = "New"
	EventStatusScheduled EventStatus = "Scheduled"
	// Complete and Archived are set directly in the record store.
	EventStatusComplete EventStatus = "Complete"
	EventStatusArchived EventStatus = "Archived"
)

func (s EventStatus) IsKnown() bool {
	switch s {
	case EventStatusNew, EventStatusScheduled, EventStatusComplete, EventStatusArchived:
		return true
	}
	return false
}

// IsSettable reports whether the back office may write s.
func (s EventStatus) IsSettable() bool {
	return s == EventStatusNew || s == EventStatusScheduled
}

func ParseEventStatus(v string) (EventStatus, error) {
	s := EventStatus(v)
	if !s.IsSettable() {
		return "", fmt.Errorf("event status %q: %w", v, ErrUnknownValue)
	}
	return s, nil
}
