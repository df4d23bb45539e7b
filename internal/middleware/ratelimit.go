// internal/middleware/ratelimit.go
//
// Per-client token-bucket rate limiter for the contact endpoints.
//
// Each client IP gets its own golang.org/x/time/rate limiter, kept in a
// bounded LRU so a flood of distinct addresses cannot grow memory without
// limit.  Rejected requests get 429 with a Retry-After hint.

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/yanizio/linkpage/internal/cache"
	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/metrics"
	"github.com/yanizio/linkpage/internal/requestinfo"
)

// maxClients bounds the number of tracked client limiters.
const maxClients = 10000

// RateLimiter hands out one limiter per key.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients *cache.LRU[string, *rate.Limiter]
}

// NewRateLimiter allows rps requests per second per client with the given
// burst.  rps ≤ 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	lim := rate.Limit(rps)
	if rps <= 0 {
		lim = rate.Inf
	}
	return &RateLimiter{
		limit:   lim,
		burst:   burst,
		clients: cache.New[string, *rate.Limiter](maxClients, nil),
	}
}

// Allow consumes one token for key.
func (l *RateLimiter) Allow(key string) bool {
	if l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	lim, ok := l.clients.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.clients.Add(key, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Middleware rejects requests over the client's budget.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	retry := "1"
	if l.limit != rate.Inf && l.limit > 0 {
		retry = strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ""
		if ip := requestinfo.ClientIP(r); ip != nil {
			key = ip.String()
		}
		if !l.Allow(key) {
			metrics.RateLimitedTotal.Inc()
			logger.FromContext(r.Context()).Warnw("rate limited", "ip", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", retry)
			http.Error(w, "Too many requests.  Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
