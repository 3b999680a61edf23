package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/mail"
)

type UserUseCase struct {
	Identity IdentityAdmin
	Notifier Notifier
	logger   zerolog.Logger
}

func NewUserUseCase(id IdentityAdmin, notifier Notifier, logger zerolog.Logger) *UserUseCase {
	return &UserUseCase{
		Identity: id,
		Notifier: notifier,
		logger:   logger.With().Str("usecase", "admin_users").Logger(),
	}
}

func (uc *UserUseCase) List(ctx context.Context) ([]entity.AdminUser, error) {
	users, err := uc.Identity.ListUsers(ctx)
	if err != nil {
		return nil, Translate(err)
	}
	if users == nil {
		users = []entity.AdminUser{}
	}
	return users, nil
}

// Invite creates an admin account and emails its password reset link. The
// link goes only to the invitee, never back to the caller.
func (uc *UserUseCase) Invite(ctx context.Context, input InviteUserInput) (*InviteUserOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, invalid([]ValidationError{{"email", "is required"}})
	}
	if !isValidEmail(email) {
		return nil, invalid([]ValidationError{{"email", "is invalid"}})
	}

	inv, err := uc.Identity.InviteUser(ctx, email)
	if err != nil {
		return nil, Translate(err)
	}
	uc.logger.Info().Str("user_id", inv.User.UserID).Msg("admin user invited")

	out := &InviteUserOutput{Success: true, User: inv.User}
	err = uc.Notifier.Notify(ctx, email, mail.TemplateAdminInvite, mail.TemplateData{
		Name:      inv.User.Name,
		ResetLink: inv.ResetLink,
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", inv.User.UserID).Msg("invite email not sent")
		out.EmailWarning = "user was created but the invite email could not be sent"
	}
	return out, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, input DeleteUserInput) error {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return invalid([]ValidationError{{"user_id", "is required"}})
	}

	if err := uc.Identity.DeleteUser(ctx, userID); err != nil {
		return Translate(err)
	}
	uc.logger.Info().Str("user_id", userID).Msg("admin user deleted")
	return nil
}
