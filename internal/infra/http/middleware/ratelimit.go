package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter is a fixed-window counter per client IP kept in Redis, so
// every API instance shares the same budget.
type RateLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
	Prefix string
	logger zerolog.Logger
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		Client: client,
		Limit:  limit,
		Window: window,
		Prefix: "ratelimit",
		logger: logger,
	}
}

// Allow counts one hit for key. Without Redis every request is allowed.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl == nil || rl.Client == nil || rl.Limit <= 0 {
		return true, nil
	}

	windowStart := time.Now().Truncate(rl.Window).Unix()
	k := fmt.Sprintf("%s:%s:%d", rl.Prefix, key, windowStart)

	n, err := rl.Client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := rl.Client.Expire(ctx, k, rl.Window).Err(); err != nil {
			return true, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(rl.Limit), nil
}

// Middleware rejects callers over the limit with 429. Redis failures let
// the request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := rl.Allow(r.Context(), clientIP(r))
		if err != nil {
			rl.logger.Warn().Err(err).Msg("rate limiter unavailable")
		}
		if !ok {
			rateLimited.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.Window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests. Please try again later."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP expects chi's RealIP middleware to have rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
