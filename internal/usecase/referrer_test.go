package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/mail"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
)

func TestSignupReferrer(t *testing.T) {
	ctx := context.Background()
	refs := new(MockReferrerRepository)
	notifier := new(MockNotifier)
	uc := NewSignupReferrerUseCase(refs, notifier, testBaseURL, zerolog.Nop())

	refs.On("Create", ctx, mock.MatchedBy(func(r *entity.Referrer) bool {
		return r.FullName == "Kai" && r.Email == "kai@example.com" && r.Environment == testBaseURL
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Referrer).ID = "recR9"
	}).Return(nil)
	notifier.On("Notify", ctx, "kai@example.com", mail.TemplateReferrerSignup, mail.TemplateData{
		Name:         "Kai",
		ReferralLink: testBaseURL + "/contact?ref=recR9",
	}).Return(nil)

	out, err := uc.Execute(ctx, ReferrerInput{Name: "Kai", Email: "kai@example.com"})

	require.NoError(t, err)
	assert.Equal(t, &ReferrerOutput{
		ID:          "recR9",
		Name:        "Kai",
		Email:       "kai@example.com",
		ReferralURL: testBaseURL + "/contact?ref=recR9",
	}, out)
	notifier.AssertExpectations(t)
}

func TestSignupReferrerEmailFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	refs := new(MockReferrerRepository)
	notifier := new(MockNotifier)
	uc := NewSignupReferrerUseCase(refs, notifier, testBaseURL, zerolog.Nop())

	refs.On("Create", ctx, mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

	out, err := uc.Execute(ctx, ReferrerInput{Name: "Kai", Email: "kai@example.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Warning)
	refs.AssertNumberOfCalls(t, "Create", 1)
}

func TestSignupReferrerRejectsBadEmail(t *testing.T) {
	refs := new(MockReferrerRepository)
	uc := NewSignupReferrerUseCase(refs, new(MockNotifier), testBaseURL, zerolog.Nop())

	_, err := uc.Execute(context.Background(), ReferrerInput{Name: "Kai", Email: "kai@"})

	assert.True(t, IsKind(err, KindValidation))
	refs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetReferrer(t *testing.T) {
	ctx := context.Background()
	refs := new(MockReferrerRepository)
	refs.On("Get", ctx, "recR1").Return(&entity.Referrer{ID: "recR1", FullName: "Kai", Email: "kai@example.com"}, nil)
	refs.On("Get", ctx, "recMissing").Return(nil, &recordstore.UpstreamError{Status: 404, Type: "NOT_FOUND"})
	uc := NewGetReferrerUseCase(refs)

	out, err := uc.Execute(ctx, "recR1")
	require.NoError(t, err)
	assert.Equal(t, "Kai", out.Name)
	assert.Empty(t, out.ReferralURL)

	_, err = uc.Execute(ctx, "recMissing")
	assert.True(t, IsKind(err, KindNotFound))
}
