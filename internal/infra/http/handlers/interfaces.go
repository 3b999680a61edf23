package handlers

import (
	"context"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/usecase"
)

type ContactSubmitter interface {
	Execute(ctx context.Context, input usecase.ContactInput) (*usecase.ContactOutput, error)
}

type ReferrerSignup interface {
	Execute(ctx context.Context, input usecase.ReferrerInput) (*usecase.ReferrerOutput, error)
}

type ReferrerFinder interface {
	Execute(ctx context.Context, id string) (*usecase.ReferrerOutput, error)
}

type RecordsLister interface {
	Execute(ctx context.Context, rawPage string) (*usecase.RecordsOutput, error)
}

type ReferrersLister interface {
	Execute(ctx context.Context) (*usecase.ReferrersOutput, error)
}

type LeadStatusUpdater interface {
	Execute(ctx context.Context, id string, input usecase.LeadStatusInput) (*entity.Lead, error)
}

type EventService interface {
	List(ctx context.Context, leadID string) ([]entity.Event, error)
	Create(ctx context.Context, input usecase.CreateEventInput) (*entity.Event, error)
	Update(ctx context.Context, id string, input usecase.UpdateEventInput) (*entity.Event, error)
}

type UserService interface {
	List(ctx context.Context) ([]entity.AdminUser, error)
	Invite(ctx context.Context, input usecase.InviteUserInput) (*usecase.InviteUserOutput, error)
	Delete(ctx context.Context, input usecase.DeleteUserInput) error
}
