package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

type ConnectionChecker interface {
	IsClosed() bool
}

type HealthHandler struct {
	Redis     *redis.Client
	RabbitMQ  ConnectionChecker
	Airtable  bool
	Auth0     bool
	Mail      string
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(rdb *redis.Client, rabbitMQ ConnectionChecker) *HealthHandler {
	return &HealthHandler{
		Redis:     rdb,
		RabbitMQ:  rabbitMQ,
		Version:   "1.0.0",
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := h.Redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			deps["redis"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["redis"] = "healthy"
		}
	} else {
		deps["redis"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	deps["airtable"] = configured(h.Airtable)
	deps["auth0"] = configured(h.Auth0)
	if h.Mail != "" {
		deps["mail"] = h.Mail
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for name, v := range deps {
		if name == "mail" {
			continue
		}
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
