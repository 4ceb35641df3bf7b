package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/code"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
)

// TokenBucket is a simple per-key rate limiter.
type TokenBucket struct {
	rate       float64
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a bucket that refills rate tokens per second
// up to capacity.
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow takes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

var (
	limiters   = make(map[string]*TokenBucket)
	limitersMu sync.RWMutex
)

func getLimiter(key string, rate float64, burst int) *TokenBucket {
	limitersMu.RLock()
	limiter, exists := limiters[key]
	limitersMu.RUnlock()
	if exists {
		return limiter
	}

	limitersMu.Lock()
	defer limitersMu.Unlock()
	if limiter, exists = limiters[key]; exists {
		return limiter
	}
	limiter = NewTokenBucket(rate, burst)
	limiters[key] = limiter
	return limiter
}

// IPRateLimiter limits each client IP to rate requests per second with
// the given burst.
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getLimiter(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests,
				"Quá nhiều yêu cầu, vui lòng thử lại sau", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CombinedRateLimiter limits per IP and path pair.
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.Request.URL.Path
		limiter := getLimiter(key, rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests,
				"Quá nhiều yêu cầu, vui lòng thử lại sau", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func init() {
	// Idle limiters accumulate per client; drop the map hourly.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			limitersMu.Lock()
			limiters = make(map[string]*TokenBucket)
			limitersMu.Unlock()
		}
	}()
}
