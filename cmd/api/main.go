package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/saltandserenity/booking/internal/config"
	"github.com/saltandserenity/booking/internal/infra/http/handlers"
	"github.com/saltandserenity/booking/internal/infra/http/middleware"
	"github.com/saltandserenity/booking/internal/infra/identity"
	"github.com/saltandserenity/booking/internal/infra/logging"
	"github.com/saltandserenity/booking/internal/infra/mail"
	"github.com/saltandserenity/booking/internal/infra/queue"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
	"github.com/saltandserenity/booking/internal/usecase"
	"github.com/saltandserenity/booking/internal/web"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs the rate limiter and the signing key cache. Both work
	// without it.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	sender, mailLabel, err := mail.NewSenderFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("mail sender")
	}
	if cfg.IsProduction() && mailLabel == "log" {
		logger.Warn().Msg("MAIL_PROVIDER is log: notifications are only written to the log")
	}
	templates, err := mail.LoadTemplates()
	if err != nil {
		logger.Fatal().Err(err).Msg("mail templates")
	}

	var notifier usecase.Notifier = mail.NewNotifier(templates, sender, logger)
	var rabbitMQ *queue.RabbitMQ
	if cfg.AMQPURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("rabbitmq")
		}
		defer rabbitMQ.Close()
		notifier = queue.NewProducer(rabbitMQ.Ch)
		logger.Info().Msg("notifications are queued for the worker")
	}

	// 1. Repositories
	store := recordstore.NewClient(cfg.AirtableURL, cfg.AirtableAPIKey, cfg.AirtableBaseID, logger)
	leadRepo := recordstore.NewLeadRepository(store, cfg.AirtableLeadsTable)
	referrerRepo := recordstore.NewReferrerRepository(store, cfg.AirtableReferrerTable)
	eventRepo := recordstore.NewEventRepository(store, cfg.AirtableEventsTable)

	// 2. Identity
	var keyCache identity.KeyCache
	if rdb != nil {
		keyCache = identity.RedisKeyCache{Client: rdb}
	}
	verifier := identity.NewSessionVerifier(identity.VerifierConfig{
		Domain:   cfg.Auth0Domain,
		ClientID: cfg.Auth0ClientID,
	}, keyCache, logger)
	authenticator := identity.NewAuthenticator(identity.LoginConfig{
		Domain:       cfg.Auth0Domain,
		ClientID:     cfg.Auth0ClientID,
		ClientSecret: cfg.Auth0ClientSecret,
		RedirectURL:  cfg.BaseURL + "/auth/callback",
	}, verifier)
	management := identity.NewManagementClient(identity.ManagementConfig{
		Domain:         cfg.Auth0Domain,
		ClientID:       cfg.Auth0MgmtClientID,
		ClientSecret:   cfg.Auth0MgmtClientSecret,
		ResetResultURL: cfg.Auth0ResetResultURL,
	}, logger)

	// 3. Use cases
	contactUC := usecase.NewSubmitContactUseCase(leadRepo, referrerRepo, notifier, cfg.BaseURL, logger)
	signupUC := usecase.NewSignupReferrerUseCase(referrerRepo, notifier, cfg.BaseURL, logger)
	getReferrerUC := usecase.NewGetReferrerUseCase(referrerRepo)
	recordsUC := usecase.NewListRecordsUseCase(leadRepo)
	referrersUC := usecase.NewListReferrersUseCase(referrerRepo)
	leadStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo, logger)
	eventUC := usecase.NewEventUseCase(eventRepo, leadRepo, logger)
	userUC := usecase.NewUserUseCase(management, notifier, logger)

	// 4. Handlers
	contactHandler := handlers.NewContactHandler(contactUC)
	referrerHandler := handlers.NewReferrerHandler(signupUC, getReferrerUC)
	adminHandler := handlers.NewAdminHandler(recordsUC, referrersUC, leadStatusUC)
	eventHandler := handlers.NewEventHandler(eventUC)
	userHandler := handlers.NewUserHandler(userUC)
	authHandler := handlers.NewAuthHandler(authenticator, cfg.BaseURL, cfg.SessionCookieSecure)

	healthHandler := handlers.NewHealthHandler(rdb, nil)
	if rabbitMQ != nil {
		healthHandler.RabbitMQ = rabbitMQ
	}
	healthHandler.Airtable = cfg.AirtableAPIKey != "" && cfg.AirtableBaseID != ""
	healthHandler.Auth0 = authenticator.Configured()
	healthHandler.Mail = mailLabel

	site, err := web.NewSite(getReferrerUC, verifier, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("site templates")
	}

	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitPerMin, time.Minute, logger)
	admin := func(fn middleware.SessionHandlerFunc) http.HandlerFunc {
		return middleware.Authenticated(verifier, logger, fn)
	}

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", authHandler.Login)
		r.Get("/callback", authHandler.Callback)
		r.Get("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/contact", contactHandler.Handle)
		r.With(limiter.Middleware).Post("/referrers", referrerHandler.HandleSignup)
		r.Get("/referrers/{id}", referrerHandler.HandleGet)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/records", admin(adminHandler.ListRecords))
			r.Patch("/records/{id}", admin(adminHandler.UpdateLeadStatus))
			r.Get("/referrers", admin(adminHandler.ListReferrers))
			r.Get("/events", admin(eventHandler.List))
			r.Post("/events", admin(eventHandler.Create))
			r.Patch("/events/{id}", admin(eventHandler.Update))
			r.Get("/users", admin(userHandler.List))
			r.Post("/users", admin(userHandler.Invite))
			r.Delete("/users", admin(userHandler.Delete))
		})
	})

	site.Routes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
