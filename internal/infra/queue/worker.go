package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/saltandserenity/booking/internal/infra/mail"
)

type Deliverer interface {
	Notify(ctx context.Context, to, templateName string, data mail.TemplateData) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel   Consumer
	Deliverer Deliverer
	logger    zerolog.Logger
}

func NewWorker(ch Consumer, deliverer Deliverer, logger zerolog.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Deliverer: deliverer,
		logger:    logger.With().Str("component", "notification_worker").Logger(),
	}
}

// Start consumes until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.logger.Info().Str("queue", queueName).Msg("worker waiting for notifications")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks delivered jobs and dead-letters the rest. A failed send is
// not requeued: the parent request already succeeded and the DLQ keeps the
// job for inspection.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var job NotificationJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.logger.Error().Err(err).Msg("malformed notification job")
		d.Nack(false, false)
		return
	}

	if err := w.Deliverer.Notify(ctx, job.To, job.Template, job.Data); err != nil {
		w.logger.Error().Err(err).Str("template", job.Template).Msg("notification failed")
		d.Nack(false, false)
		return
	}

	w.logger.Info().Str("template", job.Template).Msg("notification sent")
	d.Ack(false)
}
