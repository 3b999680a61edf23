package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/saltandserenity/booking/internal/config"
	"github.com/saltandserenity/booking/internal/infra/logging"
	"github.com/saltandserenity/booking/internal/infra/mail"
	"github.com/saltandserenity/booking/internal/infra/queue"
)

// The worker drains the notification queue filled by the API when AMQP_URL
// is set and delivers each job through the configured mail provider.
func main() {
	godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	if cfg.AMQPURL == "" {
		logger.Fatal().Msg("AMQP_URL is required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender, provider, err := mail.NewSenderFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("mail sender")
	}
	templates, err := mail.LoadTemplates()
	if err != nil {
		logger.Fatal().Err(err).Msg("mail templates")
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("rabbitmq")
	}
	defer rabbitMQ.Close()

	worker := queue.NewWorker(rabbitMQ.Ch, mail.NewNotifier(templates, sender, logger), logger)
	logger.Info().Str("queue", queue.QueueName).Str("mail", provider).Msg("worker started")

	if err := worker.Start(ctx, queue.QueueName); err != nil {
		logger.Error().Err(err).Msg("worker stopped")
		return
	}
	logger.Info().Msg("worker stopped")
}
