package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/mail"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Page(ctx context.Context, offset, limit int) (entity.LeadPage, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(entity.LeadPage), args.Error(1)
}

func (m *MockLeadRepository) Get(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockReferrerRepository struct {
	mock.Mock
}

func (m *MockReferrerRepository) List(ctx context.Context) ([]entity.Referrer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Referrer), args.Error(1)
}

func (m *MockReferrerRepository) Get(ctx context.Context, id string) (*entity.Referrer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Referrer), args.Error(1)
}

func (m *MockReferrerRepository) Create(ctx context.Context, r *entity.Referrer) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) List(ctx context.Context, leadID string) ([]entity.Event, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, id string, patch entity.EventPatch) (*entity.Event, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, to, templateName string, data mail.TemplateData) error {
	args := m.Called(ctx, to, templateName, data)
	return args.Error(0)
}

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ListUsers(ctx context.Context) ([]entity.AdminUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AdminUser), args.Error(1)
}

func (m *MockIdentity) InviteUser(ctx context.Context, email string) (*identity.Invitation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invitation), args.Error(1)
}

func (m *MockIdentity) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
