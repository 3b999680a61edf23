package recordstore

import (
	"strings"
	"time"

	"github.com/saltandserenity/booking/internal/entity"
)

// Column names in the Airtable base. Nothing outside this file spells them.
const (
	fieldFullName          = "Full Name"
	fieldEmail             = "Email"
	fieldPhone             = "Phone"
	fieldPreferredDate     = "Preferred Date"
	fieldContactMethod     = "Contact Method"
	fieldAdditionalDetails = "Additional Details"
	fieldStatus            = "Status"
	fieldCreatedAt         = "Created At"
	fieldReferrer          = "Referrer"
	fieldEnvironment       = "Environment"

	fieldReferralsCount = "Referrals Count"

	fieldTypeOfEvent    = "Type of Event"
	fieldAdults         = "# of Adults"
	fieldChildren       = "# of Children"
	fieldEventDate      = "Event Date"
	fieldNotes          = "Notes"
	fieldFinancialNotes = "Financial Notes"
	fieldLead           = "Lead"
)

func leadFromRecord(rec Record) entity.Lead {
	lead := entity.Lead{
		ID:                rec.ID,
		FullName:          stringField(rec.Fields, fieldFullName),
		Email:             stringField(rec.Fields, fieldEmail),
		Phone:             stringField(rec.Fields, fieldPhone),
		PreferredDate:     stringField(rec.Fields, fieldPreferredDate),
		ContactMethod:     entity.ContactMethod(stringField(rec.Fields, fieldContactMethod)),
		AdditionalDetails: stringField(rec.Fields, fieldAdditionalDetails),
		Status:            entity.LeadStatus(stringField(rec.Fields, fieldStatus)),
		CreatedAt:         rec.CreatedTime,
		Environment:       stringField(rec.Fields, fieldEnvironment),
	}
	if lead.Status == "" {
		lead.Status = entity.LeadStatusNew
	}
	if t, ok := timeField(rec.Fields, fieldCreatedAt); ok {
		lead.CreatedAt = t
	}
	if refs := linkField(rec.Fields, fieldReferrer); len(refs) > 0 {
		lead.ReferrerID = refs[0]
	}
	return lead
}

// leadToFields builds the create payload. Created At is computed by the
// store and never written.
func leadToFields(lead *entity.Lead) map[string]any {
	fields := map[string]any{
		fieldFullName: lead.FullName,
		fieldEmail:    lead.Email,
		fieldStatus:   string(lead.Status),
	}
	putString(fields, fieldPhone, lead.Phone)
	putString(fields, fieldPreferredDate, lead.PreferredDate)
	putString(fields, fieldContactMethod, string(lead.ContactMethod))
	putString(fields, fieldAdditionalDetails, lead.AdditionalDetails)
	putString(fields, fieldEnvironment, lead.Environment)
	if lead.ReferrerID != "" {
		fields[fieldReferrer] = []string{lead.ReferrerID}
	}
	return fields
}

func referrerFromRecord(rec Record) entity.Referrer {
	return entity.Referrer{
		ID:             rec.ID,
		FullName:       stringField(rec.Fields, fieldFullName),
		Email:          stringField(rec.Fields, fieldEmail),
		ReferralsCount: intField(rec.Fields, fieldReferralsCount),
		Environment:    stringField(rec.Fields, fieldEnvironment),
	}
}

func referrerToFields(r *entity.Referrer) map[string]any {
	fields := map[string]any{
		fieldFullName: r.FullName,
		fieldEmail:    r.Email,
	}
	putString(fields, fieldEnvironment, r.Environment)
	return fields
}

func eventFromRecord(rec Record) entity.Event {
	ev := entity.Event{
		ID:             rec.ID,
		TypeOfEvent:    entity.EventType(stringField(rec.Fields, fieldTypeOfEvent)),
		Adults:         intField(rec.Fields, fieldAdults),
		Children:       intField(rec.Fields, fieldChildren),
		Status:         entity.EventStatus(stringField(rec.Fields, fieldStatus)),
		Notes:          stringField(rec.Fields, fieldNotes),
		FinancialNotes: stringField(rec.Fields, fieldFinancialNotes),
		LeadIDs:        linkField(rec.Fields, fieldLead),
	}
	if ev.Status == "" {
		ev.Status = entity.EventStatusNew
	}
	if t, ok := timeField(rec.Fields, fieldEventDate); ok {
		ev.EventDate = t
	}
	return ev
}

func eventToFields(e *entity.Event) map[string]any {
	fields := map[string]any{
		fieldTypeOfEvent: string(e.TypeOfEvent),
		fieldAdults:      e.Adults,
		fieldChildren:    e.Children,
		fieldEventDate:   formatDate(e.EventDate),
		fieldStatus:      string(e.Status),
		fieldNotes:       e.Notes,
		fieldLead:        e.LeadIDs,
	}
	putString(fields, fieldFinancialNotes, e.FinancialNotes)
	return fields
}

// eventPatchToFields never includes the Lead column.
func eventPatchToFields(p entity.EventPatch) map[string]any {
	fields := map[string]any{}
	if p.TypeOfEvent != nil {
		fields[fieldTypeOfEvent] = string(*p.TypeOfEvent)
	}
	if p.Adults != nil {
		fields[fieldAdults] = *p.Adults
	}
	if p.Children != nil {
		fields[fieldChildren] = *p.Children
	}
	if p.EventDate != nil {
		fields[fieldEventDate] = formatDate(*p.EventDate)
	}
	if p.Status != nil {
		fields[fieldStatus] = string(*p.Status)
	}
	if p.Notes != nil {
		fields[fieldNotes] = *p.Notes
	}
	if p.FinancialNotes != nil {
		fields[fieldFinancialNotes] = *p.FinancialNotes
	}
	return fields
}

// EventFields renders an event keyed by column name, the shape the admin
// API returns.
func EventFields(e entity.Event) map[string]any {
	leads := e.LeadIDs
	if leads == nil {
		leads = []string{}
	}
	out := map[string]any{
		fieldTypeOfEvent:    string(e.TypeOfEvent),
		fieldAdults:         e.Adults,
		fieldChildren:       e.Children,
		fieldEventDate:      "",
		fieldStatus:         string(e.Status),
		fieldNotes:          e.Notes,
		fieldFinancialNotes: e.FinancialNotes,
		fieldLead:           leads,
	}
	if !e.EventDate.IsZero() {
		out[fieldEventDate] = formatDate(e.EventDate)
	}
	return out
}

func leadFilter(leadID string) string {
	return "{" + fieldLead + "} = '" + strings.ReplaceAll(leadID, "'", "\\'") + "'"
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func linkField(fields map[string]any, key string) []string {
	raw, ok := fields[key].([]any)
	if !ok {
		if s, ok := fields[key].([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func timeField(fields map[string]any, key string) (time.Time, bool) {
	s := stringField(fields, key)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func putString(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
