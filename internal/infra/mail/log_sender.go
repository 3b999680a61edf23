package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender records messages instead of delivering them. It is the default
// when no provider is configured.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email not sent: no mail provider configured")
	return nil
}
