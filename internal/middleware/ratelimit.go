package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimit applies a per-client token bucket keyed by remote IP.
// Limiters for idle clients are dropped once the map grows past a soft
// cap; a dropped client simply starts a fresh bucket.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	const maxClients = 4096

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		if len(limiters) >= maxClients {
			limiters = make(map[string]*rate.Limiter)
		}
		l := rate.NewLimiter(rate.Limit(rps), burst)
		limiters[key] = l
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !limiterFor(host).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
