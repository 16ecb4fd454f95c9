package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// RateLimiter implements a fixed-window limiter keyed by client IP.
type RateLimiter struct {
	requests map[string]*bucket
	mu       sync.Mutex
	rate     int
	duration time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter allows rate requests per duration per client. Idle buckets are swept until ctx is done.
func NewRateLimiter(ctx context.Context, rate int, duration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*bucket),
		rate:     rate,
		duration: duration,
		now:      time.Now,
	}

	go rl.cleanup(ctx, time.Hour)

	return rl
}

// Middleware returns a Gin middleware that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.Header("Retry-After", rl.retryAfter())
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", "rate_limit_exceeded")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.requests[key]
	if !exists || now.Sub(b.lastReset) > rl.duration {
		b = &bucket{tokens: rl.rate, lastReset: now}
		rl.requests[key] = b
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) retryAfter() string {
	seconds := int(rl.duration.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

func (rl *RateLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.duration)
	for key, b := range rl.requests {
		if b.lastReset.Before(cutoff) {
			delete(rl.requests, key)
		}
	}
}
