package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/usecase"
)

type MockContactSubmitter struct{ mock.Mock }

func (m *MockContactSubmitter) Execute(ctx context.Context, input usecase.ContactInput) (*usecase.ContactOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ContactOutput), args.Error(1)
}

type MockReferrerSignup struct{ mock.Mock }

func (m *MockReferrerSignup) Execute(ctx context.Context, input usecase.ReferrerInput) (*usecase.ReferrerOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReferrerOutput), args.Error(1)
}

type MockReferrerFinder struct{ mock.Mock }

func (m *MockReferrerFinder) Execute(ctx context.Context, id string) (*usecase.ReferrerOutput, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReferrerOutput), args.Error(1)
}

type MockRecordsLister struct{ mock.Mock }

func (m *MockRecordsLister) Execute(ctx context.Context, rawPage string) (*usecase.RecordsOutput, error) {
	args := m.Called(rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RecordsOutput), args.Error(1)
}

type MockReferrersLister struct{ mock.Mock }

func (m *MockReferrersLister) Execute(ctx context.Context) (*usecase.ReferrersOutput, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReferrersOutput), args.Error(1)
}

type MockLeadStatusUpdater struct{ mock.Mock }

func (m *MockLeadStatusUpdater) Execute(ctx context.Context, id string, input usecase.LeadStatusInput) (*entity.Lead, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockEventService struct{ mock.Mock }

func (m *MockEventService) List(ctx context.Context, leadID string) ([]entity.Event, error) {
	args := m.Called(leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, input usecase.CreateEventInput) (*entity.Event, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id string, input usecase.UpdateEventInput) (*entity.Event, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) List(ctx context.Context) ([]entity.AdminUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AdminUser), args.Error(1)
}

func (m *MockUserService) Invite(ctx context.Context, input usecase.InviteUserInput) (*usecase.InviteUserOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.InviteUserOutput), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, input usecase.DeleteUserInput) error {
	args := m.Called(input)
	return args.Error(0)
}

type fakeLoginFlow struct {
	configured bool
	token      string
	session    *identity.Session
	err        error
	gotCode    string
}

func (f *fakeLoginFlow) Configured() bool { return f.configured }

func (f *fakeLoginFlow) AuthCodeURL(state string) string {
	return "https://tenant.auth0.com/authorize?state=" + state
}

func (f *fakeLoginFlow) Exchange(ctx context.Context, code string) (string, *identity.Session, error) {
	f.gotCode = code
	return f.token, f.session, f.err
}

func (f *fakeLoginFlow) LogoutURL(returnTo string) string {
	return "https://tenant.auth0.com/v2/logout?returnTo=" + returnTo
}

var testSession = &identity.Session{Subject: "auth0|iris", Email: "iris@example.com"}
