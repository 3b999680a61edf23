package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    zerolog.Logger
}

func NewSendGridSender(apiKey, fromEmail, fromName string, logger zerolog.Logger) *SendGridSender {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &SendGridSender{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("sendgrid sender not configured")
	}

	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("sendgrid send failed")
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error().Int("status", response.StatusCode).Str("body", response.Body).Str("to", msg.To).Msg("sendgrid returned error status")
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info().Str("to", msg.To).Int("status", response.StatusCode).Msg("email sent via sendgrid")
	return nil
}
