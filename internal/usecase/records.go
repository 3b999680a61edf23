package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
)

type ListRecordsUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewListRecordsUseCase(leads entity.LeadRepositoryInterface) *ListRecordsUseCase {
	return &ListRecordsUseCase{Leads: leads}
}

// Execute returns one page of leads, newest first. A page past the end is
// not an error; it simply has no records.
func (uc *ListRecordsUseCase) Execute(ctx context.Context, rawPage string) (*RecordsOutput, error) {
	page, err := ParsePage(rawPage)
	if err != nil {
		return nil, err
	}

	offset, limit := PageWindow(page)
	result, err := uc.Leads.Page(ctx, offset, limit)
	if err != nil {
		return nil, Translate(err)
	}

	records := result.Leads
	if records == nil {
		records = []entity.Lead{}
	}
	if len(records) > limit {
		records = records[:limit]
	}

	return &RecordsOutput{
		Records:    records,
		Total:      result.Total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: TotalPages(result.Total),
	}, nil
}

type ListReferrersUseCase struct {
	Referrers entity.ReferrerRepositoryInterface
}

func NewListReferrersUseCase(referrers entity.ReferrerRepositoryInterface) *ListReferrersUseCase {
	return &ListReferrersUseCase{Referrers: referrers}
}

func (uc *ListReferrersUseCase) Execute(ctx context.Context) (*ReferrersOutput, error) {
	refs, err := uc.Referrers.List(ctx)
	if err != nil {
		return nil, Translate(err)
	}
	if refs == nil {
		refs = []entity.Referrer{}
	}
	return &ReferrersOutput{Referrers: refs}, nil
}

type UpdateLeadStatusUseCase struct {
	Leads  entity.LeadRepositoryInterface
	logger zerolog.Logger
}

func NewUpdateLeadStatusUseCase(leads entity.LeadRepositoryInterface, logger zerolog.Logger) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{
		Leads:  leads,
		logger: logger.With().Str("usecase", "update_lead_status").Logger(),
	}
}

// Execute moves a lead along New, Contacted, Booked. Moving backwards is
// rejected.
func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, id string, input LeadStatusInput) (*entity.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid([]ValidationError{{"id", "is required"}})
	}
	next, err := entity.ParseLeadStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return nil, invalid([]ValidationError{{"status", "must be New, Contacted or Booked"}})
	}

	lead, err := uc.Leads.Get(ctx, id)
	if err != nil {
		return nil, Translate(err)
	}
	if !lead.Status.CanMoveTo(next) {
		return nil, invalid([]ValidationError{{"status", "cannot move from " + string(lead.Status) + " to " + string(next)}})
	}
	if lead.Status == next {
		return lead, nil
	}

	updated, err := uc.Leads.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, Translate(err)
	}
	uc.logger.Info().Str("lead_id", id).Str("from", string(lead.Status)).Str("to", string(next)).Msg("lead status changed")
	return updated, nil
}
