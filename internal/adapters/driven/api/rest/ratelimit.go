package rest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds client-side rate limiting configuration.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. 0 means unlimited.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is used when no configuration is given.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 20, BurstSize: 10}

// RateLimitFor derives the client limit from the directory fan-out settings
// so the client never throttles below the directory's own limiter. A rate of
// 0 leaves the client unlimited; the burst covers every concurrent fetch.
func RateLimitFor(requestsPerSecond float64, concurrency int) RateLimitConfig {
	burst := DefaultRateLimit.BurstSize
	if concurrency > burst {
		burst = concurrency
	}
	return RateLimitConfig{RequestsPerSecond: requestsPerSecond, BurstSize: burst}
}

// DefaultBackoff applies when a 429 response carries no Retry-After header.
const DefaultBackoff = 5 * time.Second

// RateLimiter throttles backend requests with a token bucket and honours
// server-requested backoff after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// Backoff delays further requests by the Retry-After header value
// (seconds), or DefaultBackoff when it is missing or malformed.
func (r *RateLimiter) Backoff(retryAfter string) {
	delay := DefaultBackoff
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
		delay = time.Duration(secs) * time.Second
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(delay); until.After(r.retryAt) {
		r.retryAt = until
	}
}
