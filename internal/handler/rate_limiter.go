package handler

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleThreshold = 1 * time.Hour
	cleanupInterval      = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client IP. Each form submission
// can dial a real phone, so bursts from one client are capped.
type RateLimiter struct {
	mu          sync.Mutex
	perMinute   int
	burst       int
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
}

// NewRateLimiter allows perMinute requests per client with bursts up to burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		perMinute:   perMinute,
		burst:       burst,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) > limiterIdleThreshold {
			delete(rl.clients, ip)
		}
	}
}

// Stop ends the background cleanup
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// Allow reports whether the client may make another request now
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.burst),
		}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

// RateLimitMiddleware rejects clients that exceed the limiter. A nil limiter
// disables limiting.
func RateLimitMiddleware(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				logger.Warn("rate limit exceeded", slog.String("ip", ip))
				respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
