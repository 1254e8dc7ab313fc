package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/crewly/api/internal/model"
)

// RateLimiter throttles request bursts with one token bucket per caller.
// Buckets refill continuously across the window and idle buckets are pruned
// in the background.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      int
	window    time.Duration
	burst     int
	pruneTick time.Duration
	quit      chan struct{}
}

type visitor struct {
	tokens   int
	refilled time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Extra headroom on top of Rate (default 20)
	Cleanup time.Duration // Prune interval for idle buckets (default 5 minutes)
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      cfg.Rate,
		window:    cfg.Window,
		burst:     cfg.Burst,
		pruneTick: cfg.Cleanup,
		quit:      make(chan struct{}),
	}

	go rl.pruneLoop()

	return rl
}

// Stop stops the prune goroutine
func (rl *RateLimiter) Stop() {
	close(rl.quit)
}

func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

func (rl *RateLimiter) pruneLoop() {
	ticker := time.NewTicker(rl.pruneTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.pruneIdle()
		case <-rl.quit:
			return
		}
	}
}

// pruneIdle drops buckets that have not been touched for two full windows
func (rl *RateLimiter) pruneIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.window)
	for key, v := range rl.visitors {
		if v.refilled.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Allow spends one token for the caller. It reports whether the request may
// proceed, how many tokens remain, and when the bucket fully resets.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: rl.capacity(), refilled: now}
		rl.visitors[key] = v
	} else {
		rl.refill(v, now)
	}

	reset = v.refilled.Add(rl.window)
	if v.tokens == 0 {
		return false, 0, reset
	}
	v.tokens--
	return true, v.tokens, reset
}

// refill credits tokens proportional to the time elapsed since the last
// refill, capped at capacity. Sub-token elapses leave the bucket untouched
// so the refill clock keeps running.
func (rl *RateLimiter) refill(v *visitor, now time.Time) {
	elapsed := now.Sub(v.refilled)
	if elapsed >= rl.window {
		v.tokens = rl.capacity()
		v.refilled = now
		return
	}

	credit := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window)))
	if credit == 0 {
		return
	}
	v.tokens += credit
	if v.tokens > rl.capacity() {
		v.tokens = rl.capacity()
	}
	v.refilled = now
}

// callerKey identifies the caller for throttling and replay scoping: the
// authenticated user when present, the remote address otherwise
func callerKey(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return userID
	}
	return r.RemoteAddr
}

// RateLimit returns a middleware that applies rate limiting per caller and
// reports quota through X-RateLimit-* headers
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := limiter.Allow(callerKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
