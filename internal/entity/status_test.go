package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusUnknownValuePassesThrough(t *testing.T) {
	s := LeadStatus("Waitlisted")

	assert.False(t, s.IsKnown())
	assert.Equal(t, "Waitlisted", string(s))
	assert.True(t, s.CanMoveTo(LeadStatusContacted))
}

func TestLeadStatusMovesForwardOnly(t *testing.T) {
	assert.True(t, LeadStatusNew.CanMoveTo(LeadStatusContacted))
	assert.True(t, LeadStatusContacted.CanMoveTo(LeadStatusBooked))
	assert.True(t, LeadStatusBooked.CanMoveTo(LeadStatusBooked))
	assert.False(t, LeadStatusBooked.CanMoveTo(LeadStatusNew))
	assert.False(t, LeadStatusNew.CanMoveTo(LeadStatus("Lost")))
}

func TestParseEventStatusRejectsStoreOnlyValues(t *testing.T) {
	_, err := ParseEventStatus("Archived")
	assert.True(t, errors.Is(err, ErrUnknownValue))

	s, err := ParseEventStatus("Scheduled")
	assert.NoError(t, err)
	assert.Equal(t, EventStatusScheduled, s)
	assert.True(t, EventStatusArchived.IsKnown())
}

func TestParseEventTypeAndContactMethod(t *testing.T) {
	typ, err := ParseEventType("Drinks and Appetizers")
	assert.NoError(t, err)
	assert.Equal(t, EventTypeDrinks, typ)

	_, err = ParseEventType("Brunch")
	assert.ErrorIs(t, err, ErrUnknownValue)

	_, err = ParseContactMethod("Carrier Pigeon")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestEventLeadID(t *testing.T) {
	assert.Equal(t, "", Event{}.LeadID())
	assert.Equal(t, "recA", Event{LeadIDs: []string{"recA"}}.LeadID())
}
