package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
	logger    zerolog.Logger
}

func NewSMTPSender(host string, port int, user, password, fromEmail, fromName string, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		Host:      host,
		Port:      port,
		User:      user,
		Password:  password,
		FromEmail: fromEmail,
		FromName:  fromName,
		logger:    logger,
	}
}

// Send dials the relay for every message; gomail's dialer holds no pool.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.Host == "" || s.User == "" {
		return fmt.Errorf("smtp sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.FromEmail, s.FromName)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("smtp send failed")
		return fmt.Errorf("smtp send: %w", err)
	}

	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent via smtp")
	return nil
}
