// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute

	// pruneEvery bounds how often expired windows are swept from the map.
	pruneEvery = 256
)

type attemptWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter throttles login attempts per client IP within a fixed
// window. Registration and all token-protected routes are not limited.
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*attemptWindow
	max      int
	duration time.Duration
	calls    int
}

// NewRateLimiter returns a limiter with the default attempt budget.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig returns a limiter with a custom attempt budget
// and window. Tests use a large budget so scenarios can log in freely.
func NewRateLimiterWithConfig(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:  make(map[string]*attemptWindow),
		max:      maxAttempts,
		duration: window,
	}
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if key == "" {
			key = ctx.Request.RemoteAddr
		}

		if !rl.allow(key, time.Now()) {
			ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls%pruneEvery == 0 {
		for k, w := range rl.windows {
			if now.After(w.resetAt) {
				delete(rl.windows, k)
			}
		}
	}

	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		rl.windows[key] = &attemptWindow{count: 1, resetAt: now.Add(rl.duration)}
		return true
	}
	if w.count < rl.max {
		w.count++
		return true
	}
	return false
}
