package server

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/pkg/models"
)

// RateLimiter grants each client a fixed number of requests per window.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientWindow
	rate       int
	window     time.Duration
	trustProxy bool
	now        func() time.Time
	stopOnce   sync.Once
	stopChan   chan struct{}
}

// clientWindow is the request budget left to one client in its current window.
type clientWindow struct {
	remaining int
	start     time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the per-client budget. Default: 120.
	RequestsPerMinute int
	// CleanupInterval is how often idle clients are forgotten. Default: 5 minutes.
	CleanupInterval time.Duration
	// TrustProxy identifies clients by X-Forwarded-For / X-Real-IP instead
	// of the connection address. Enable only behind a trusted proxy.
	TrustProxy bool
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine;
// call Stop to release it.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = defaults.RequestsPerMinute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}

	rl := &RateLimiter{
		clients:    make(map[string]*clientWindow),
		rate:       config.RequestsPerMinute,
		window:     time.Minute,
		trustProxy: config.TrustProxy,
		now:        time.Now,
		stopChan:   make(chan struct{}),
	}

	go rl.cleanupLoop(config.CleanupInterval)

	return rl
}

// Allow consumes one request from the client's budget. When the budget is
// exhausted it reports false and how long until the window resets.
func (rl *RateLimiter) Allow(clientIP string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, ok := rl.clients[clientIP]
	if !ok || now.Sub(client.start) >= rl.window {
		rl.clients[clientIP] = &clientWindow{remaining: rl.rate - 1, start: now}
		return true, 0
	}
	if client.remaining > 0 {
		client.remaining--
		return true, 0
	}
	return false, rl.window - now.Sub(client.start)
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for ip, client := range rl.clients {
				if now.Sub(client.start) > 2*rl.window {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopChan:
			return
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// RateLimitMiddleware rejects requests over the client's budget with 429
// and a Retry-After header.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.Allow(rl.clientIP(r))
		if !ok {
			rateLimitedRequests.Inc()
			seconds := int(math.Ceil(retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			_ = writeEncoded(w, r, http.StatusTooManyRequests, models.ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: fmt.Sprintf("Rate limit of %d requests per minute exceeded.", rl.rate),
			})
			return
		}
		next(w, r)
	}
}

// clientIP identifies the client of r. Forwarding headers are only honored
// when the limiter trusts its proxy.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			return extractFirstIP(xff)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	return stripPort(r.RemoteAddr)
}

// extractFirstIP returns the original client of an X-Forwarded-For list.
func extractFirstIP(xff string) string {
	if idx := strings.IndexByte(xff, ','); idx != -1 {
		return strings.TrimSpace(xff[:idx])
	}
	return strings.TrimSpace(xff)
}

// stripPort removes the port from an address string, handling IPv6
// brackets.
func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return strings.Trim(addr, "[]")
	}
	return host
}
