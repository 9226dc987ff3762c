package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix = "circulation:ratelimit"
	rateLimitWindow    = time.Minute
)

// RateCounter is the subset of redis.Cmdable the RateLimiter uses.
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter allows each client a fixed number of write requests per minute.
// Clients are told apart by remote IP. When Redis is unreachable requests pass.
type RateLimiter struct {
	counter   RateCounter
	perWindow int64
	logger    *slog.Logger
}

// NewRateLimiter creates a RateLimiter that counts in Redis.
func NewRateLimiter(counter RateCounter, perMinute int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}

	return &RateLimiter{counter: counter, perWindow: int64(perMinute), logger: logger}
}

// Allow counts the request against the client's window and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	key := fmt.Sprintf("%s:%s", rateLimitKeyPrefix, client)

	count, err := l.counter.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		if err := l.counter.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
			return true, err
		}
	}

	return count <= l.perWindow, nil
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)

		allowed, err := l.Allow(r.Context(), client)
		if err != nil {
			l.logger.WarnContext(r.Context(), "rate limiter unavailable", "client", client, "error", err.Error())
		}

		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rateLimitWindow.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
