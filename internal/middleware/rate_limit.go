package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// limiterIdleTTL are evicted.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
	allowed  map[string]bool
}

func NewRateLimiter(rps float64, burst int, allowedIPs ...string) *RateLimiter {
	allowed := map[string]bool{"127.0.0.1": true}
	for _, ip := range allowedIPs {
		allowed[ip] = true
	}
	return &RateLimiter{
		limiters: cache.New(limiterIdleTTL, time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
		allowed:  allowed,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
	}
	rl.limiters.SetDefault(ip, limiter)
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if rl.allowed[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
