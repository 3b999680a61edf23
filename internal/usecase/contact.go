package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/mail"
)

type SubmitContactUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Referrers entity.ReferrerRepositoryInterface
	Notifier  Notifier
	BaseURL   string
	Now       func() time.Time
	logger    zerolog.Logger
}

func NewSubmitContactUseCase(
	leads entity.LeadRepositoryInterface,
	referrers entity.ReferrerRepositoryInterface,
	notifier Notifier,
	baseURL string,
	logger zerolog.Logger,
) *SubmitContactUseCase {
	return &SubmitContactUseCase{
		Leads:     leads,
		Referrers: referrers,
		Notifier:  notifier,
		BaseURL:   baseURL,
		Now:       time.Now,
		logger:    logger.With().Str("usecase", "submit_contact").Logger(),
	}
}

// Execute stores the inquiry as a new lead, then emails the guest and, for
// referred guests, the referrer. Email failures only add a warning.
func (uc *SubmitContactUseCase) Execute(ctx context.Context, input ContactInput) (*ContactOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.ReferrerID = strings.TrimSpace(input.ReferrerID)

	if errs := ValidateContactInput(input); len(errs) > 0 {
		return nil, invalid(errs)
	}

	lead := &entity.Lead{
		FullName:          input.Name,
		Email:             input.Email,
		Phone:             strings.TrimSpace(input.Phone),
		PreferredDate:     strings.TrimSpace(input.PreferredDate),
		ContactMethod:     entity.ContactMethod(input.ContactMethod),
		AdditionalDetails: input.Message,
		Status:            entity.LeadStatusNew,
		CreatedAt:         uc.Now().UTC(),
		ReferrerID:        input.ReferrerID,
		Environment:       uc.BaseURL,
	}
	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, Translate(err)
	}
	uc.logger.Info().Str("lead_id", lead.ID).Bool("referred", lead.ReferrerID != "").Msg("lead created")

	var warnings []string
	var ref *entity.Referrer
	if lead.ReferrerID != "" {
		var err error
		ref, err = uc.Referrers.Get(ctx, lead.ReferrerID)
		if err != nil {
			uc.logger.Warn().Err(err).Str("referrer_id", lead.ReferrerID).Msg("referrer lookup failed")
			warnings = append(warnings, "referrer could not be notified")
		}
	}

	// An unresolved referrer gets the plain confirmation rather than a
	// greeting with a blank name.
	guestTemplate := mail.TemplateContactNoReferral
	guestData := mail.TemplateData{Name: lead.FullName}
	if ref != nil {
		guestTemplate = mail.TemplateContactReferral
		guestData.ReferrerName = ref.FullName
	}
	if err := uc.Notifier.Notify(ctx, lead.Email, guestTemplate, guestData); err != nil {
		uc.logger.Warn().Err(err).Str("lead_id", lead.ID).Msg("guest confirmation not sent")
		warnings = append(warnings, "confirmation email could not be sent")
	}

	if ref != nil {
		if w := uc.notifyReferrer(ctx, ref, lead); w != "" {
			warnings = append(warnings, w)
		}
	}

	return &ContactOutput{
		ID:         lead.ID,
		Name:       lead.FullName,
		Email:      lead.Email,
		Message:    lead.AdditionalDetails,
		ReferrerID: lead.ReferrerID,
		Warning:    strings.Join(warnings, "; "),
	}, nil
}

func (uc *SubmitContactUseCase) notifyReferrer(ctx context.Context, ref *entity.Referrer, lead *entity.Lead) string {
	err := uc.Notifier.Notify(ctx, ref.Email, mail.TemplateReferrerNotification, mail.TemplateData{
		Name:         ref.FullName,
		ReferrerName: ref.FullName,
		GuestName:    lead.FullName,
		ReferralLink: ReferralURL(uc.BaseURL, ref.ID),
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("referrer_id", ref.ID).Msg("referrer notification not sent")
		return "referrer notification email could not be sent"
	}
	return ""
}

// ReferralURL is the contact page link a referrer shares with friends.
func ReferralURL(baseURL, referrerID string) string {
	return baseURL + "/contact?ref=" + referrerID
}
