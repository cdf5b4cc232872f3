package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client within a fixed window. Uploads are
// expensive (extraction plus two LLM calls), so the limit applies per IP
// rather than globally.
type RateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	windowStart time.Time
	limit       int
	window      time.Duration
}

// NewRateLimiter allows up to limit requests per client per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts:      make(map[string]int),
		windowStart: time.Now(),
		limit:       limit,
		window:      window,
	}
}

// Allow records a request from clientIP and reports whether it is within
// the current window's budget.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.windowStart) > rl.window {
		rl.counts = make(map[string]int)
		rl.windowStart = time.Now()
	}

	if rl.counts[clientIP] >= rl.limit {
		return false
	}
	rl.counts[clientIP]++
	return true
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			slog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
