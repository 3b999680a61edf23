package mail

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/config"
)

// NewSenderFromConfig picks the Sender named by cfg.MailProvider and
// returns it with a short label for the health report.
func NewSenderFromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Sender, string, error) {
	switch cfg.MailProvider {
	case "smtp":
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFromEmail, cfg.MailFromName, logger), "smtp", nil
	case "sendgrid":
		return NewSendGridSender(cfg.SendGridKey, cfg.MailFromEmail, cfg.MailFromName, logger), "sendgrid", nil
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}
		return NewSESSender(sesv2.NewFromConfig(awsCfg), cfg.MailFromEmail, cfg.MailFromName, logger), "ses", nil
	case "log", "":
		return NewLogSender(logger), "log", nil
	default:
		return nil, "", fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
