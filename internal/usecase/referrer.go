package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/mail"
)

type SignupReferrerUseCase struct {
	Referrers entity.ReferrerRepositoryInterface
	Notifier  Notifier
	BaseURL   string
	logger    zerolog.Logger
}

func NewSignupReferrerUseCase(referrers entity.ReferrerRepositoryInterface, notifier Notifier, baseURL string, logger zerolog.Logger) *SignupReferrerUseCase {
	return &SignupReferrerUseCase{
		Referrers: referrers,
		Notifier:  notifier,
		BaseURL:   baseURL,
		logger:    logger.With().Str("usecase", "signup_referrer").Logger(),
	}
}

func (uc *SignupReferrerUseCase) Execute(ctx context.Context, input ReferrerInput) (*ReferrerOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if errs := ValidateReferrerInput(input); len(errs) > 0 {
		return nil, invalid(errs)
	}

	ref := &entity.Referrer{
		FullName:    input.Name,
		Email:       input.Email,
		Environment: uc.BaseURL,
	}
	if err := uc.Referrers.Create(ctx, ref); err != nil {
		return nil, Translate(err)
	}

	out := &ReferrerOutput{
		ID:          ref.ID,
		Name:        ref.FullName,
		Email:       ref.Email,
		ReferralURL: ReferralURL(uc.BaseURL, ref.ID),
	}
	uc.logger.Info().Str("referrer_id", ref.ID).Msg("referrer created")

	err := uc.Notifier.Notify(ctx, ref.Email, mail.TemplateReferrerSignup, mail.TemplateData{
		Name:         ref.FullName,
		ReferralLink: out.ReferralURL,
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("referrer_id", ref.ID).Msg("welcome email not sent")
		out.Warning = "welcome email could not be sent"
	}

	return out, nil
}

type GetReferrerUseCase struct {
	Referrers entity.ReferrerRepositoryInterface
}

func NewGetReferrerUseCase(referrers entity.ReferrerRepositoryInterface) *GetReferrerUseCase {
	return &GetReferrerUseCase{Referrers: referrers}
}

// Execute returns the public view of a referrer, used by the contact page
// to greet referred guests.
func (uc *GetReferrerUseCase) Execute(ctx context.Context, id string) (*ReferrerOutput, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid([]ValidationError{{"id", "is required"}})
	}

	ref, err := uc.Referrers.Get(ctx, id)
	if err != nil {
		return nil, Translate(err)
	}

	return &ReferrerOutput{ID: ref.ID, Name: ref.FullName, Email: ref.Email}, nil
}
