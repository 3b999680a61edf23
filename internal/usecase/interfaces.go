package usecase

import (
	"context"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/mail"
)

// Notifier sends one templated email. Both mail.Notifier and the queue
// producer satisfy it.
type Notifier interface {
	Notify(ctx context.Context, to, templateName string, data mail.TemplateData) error
}

type IdentityAdmin interface {
	ListUsers(ctx context.Context) ([]entity.AdminUser, error)
	InviteUser(ctx context.Context, email string) (*identity.Invitation, error)
	DeleteUser(ctx context.Context, userID string) error
}
