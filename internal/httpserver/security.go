package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"vt-tradesim/internal/httputil"
)

// SecurityHeaders adds standard security headers to protect against common attacks
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      float64
	burst    float64
}

type visitor struct {
	lastSeen time.Time
	tokens   float64
}

func newRateLimiter(rps float64) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    rps * 3,
	}
	go func() {
		for {
			time.Sleep(1 * time.Minute)
			rl.pruneVisitors()
		}
	}()
	return rl
}

// pruneVisitors cleans up old entries to prevent memory leaks
func (rl *rateLimiter) pruneVisitors() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > 3*time.Minute {
			delete(rl.visitors, ip)
		}
	}
}

// RateLimit implements a per-IP token bucket limiter.
func RateLimit(rps float64) func(http.Handler) http.Handler {
	rl := newRateLimiter(rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}

			rl.mu.Lock()
			v, exists := rl.visitors[ip]
			if !exists {
				v = &visitor{tokens: rl.burst, lastSeen: time.Now()}
				rl.visitors[ip] = v
			}

			now := time.Now()
			elapsed := now.Sub(v.lastSeen).Seconds()
			v.lastSeen = now

			v.tokens += elapsed * rl.rps
			if v.tokens > rl.burst {
				v.tokens = rl.burst
			}

			if v.tokens < 1 {
				rl.mu.Unlock()
				httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{Error: "rate limit exceeded"})
				return
			}

			v.tokens -= 1
			rl.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
