package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

// SESAPI is the slice of the SES v2 client this package calls.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESSender struct {
	client    SESAPI
	fromEmail string
	fromName  string
	logger    zerolog.Logger
}

func NewSESSender(client SESAPI, fromEmail, fromName string, logger zerolog.Logger) *SESSender {
	return &SESSender{client: client, fromEmail: fromEmail, fromName: fromName, logger: logger}
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("ses sender not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Msg("ses send failed")
		return fmt.Errorf("ses send: %w", err)
	}

	s.logger.Info().Str("to", msg.To).Str("message_id", aws.ToString(out.MessageId)).Msg("email sent via ses")
	return nil
}
