package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/saltandserenity/booking/internal/infra/mail"
)

// NotificationJob is one email waiting to be rendered and sent by the worker.
type NotificationJob struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     mail.TemplateData `json:"data"`
}

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer queues notifications instead of sending them inline. It has the
// same Notify signature as mail.Notifier so callers can use either.
type Producer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) Notify(ctx context.Context, to, templateName string, data mail.TemplateData) error {
	body, err := json.Marshal(NotificationJob{To: to, Template: templateName, Data: data})
	if err != nil {
		return fmt.Errorf("encode notification job: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
