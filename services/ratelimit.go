package services

import (
	"context"
	"log"
	"time"
)

// Counter increments a key that expires window after its first increment.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitInfo is the quota state of one client after a request.
type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Used      int64 `json:"used"`
	Throttled bool  `json:"throttled"`
}

// RateLimiter caps analyze requests per client in fixed windows. A nil
// limiter allows everything.
type RateLimiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
}

func NewRateLimiter(counter Counter, perMinute int) *RateLimiter {
	if counter == nil || perMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		counter: counter,
		limit:   perMinute,
		window:  time.Minute,
		prefix:  "ratelimit:analyze:",
	}
}

// Allow counts one request for client. Counter failures let the request
// through.
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, RateLimitInfo) {
	if l == nil {
		return true, RateLimitInfo{Limit: -1, Remaining: -1}
	}

	used, err := l.counter.Incr(ctx, l.prefix+client, l.window)
	if err != nil {
		log.Printf("[RATELIMIT] ⚠ counter unavailable, allowing %s: %v", client, err)
		return true, RateLimitInfo{Limit: l.limit, Remaining: -1}
	}

	info := RateLimitInfo{
		Limit:     l.limit,
		Used:      used,
		Remaining: max(l.limit-int(used), 0),
		Throttled: used > int64(l.limit),
	}
	if info.Throttled {
		log.Printf("[RATELIMIT] 🚫 %s over quota (%d/%d)", client, used, l.limit)
	}
	return !info.Throttled, info
}
