package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Notifier renders a named template and hands it to a Sender.
type Notifier struct {
	templates *Templates
	sender    Sender
	logger    zerolog.Logger
}

func NewNotifier(templates *Templates, sender Sender, logger zerolog.Logger) *Notifier {
	return &Notifier{templates: templates, sender: sender, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, to, templateName string, data TemplateData) error {
	subject, html, err := n.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	if err := n.sender.Send(ctx, Message{To: to, ToName: data.Name, Subject: subject, HTML: html}); err != nil {
		return fmt.Errorf("send %s: %w", templateName, err)
	}
	n.logger.Debug().Str("template", templateName).Str("to", to).Msg("notification delivered")
	return nil
}
