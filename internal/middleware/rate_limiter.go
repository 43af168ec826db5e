package middleware

import (
	"net/http"
	"sync"
	"time"

	"posadmin/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// RateLimiter is a sliding-window per-IP limiter. Each instance owns its own
// map, so the login limiter and the general API limiter never share state and
// heavy but legitimate API traffic cannot mask a password-guessing burst.
type RateLimiter struct {
	limit   int
	window  time.Duration
	message string

	mu      sync.Mutex
	entries map[string]*rateEntry
}

// NewRateLimiter builds a general-purpose limiter and starts its background
// purge so IPs that never return do not accumulate forever.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(limit, window, "too many requests")
}

// NewLoginRateLimiter builds the stricter limiter for credential endpoints.
func NewLoginRateLimiter(limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(limit, window, "too many login attempts")
}

func newRateLimiter(limit int, window time.Duration, message string) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		message: message,
		entries: make(map[string]*rateEntry),
	}
	go rl.purgeLoop()
	return rl
}

// Handle is the gin middleware enforcing this limiter.
func (rl *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := rl.fetchEntry(c.ClientIP())

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}

		entry.count++
		if entry.count > rl.limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Fail(rl.message))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) fetchEntry(ip string) *rateEntry {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	entry, exists := rl.entries[ip]
	if !exists {
		entry = &rateEntry{}
		rl.entries[ip] = entry
	}
	return entry
}

const purgeInterval = 5 * time.Minute

func (rl *RateLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		if purged := rl.purge(time.Now()); purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Msg("rate limiter map purged")
		}
	}
}

func (rl *RateLimiter) purge(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	purged := 0
	for ip, entry := range rl.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}
