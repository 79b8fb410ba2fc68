// Package middleware provides the HTTP middleware stack for the bikeshop API.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// limiter counts requests per client key over fixed windows.
type limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	seen   map[string]*windowCount
}

type windowCount struct {
	n       int
	resetAt time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	l := &limiter{max: max, window: window, seen: map[string]*windowCount{}}
	go l.janitor()
	return l
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	wc, ok := l.seen[key]
	if !ok || now.After(wc.resetAt) {
		l.seen[key] = &windowCount{n: 1, resetAt: now.Add(l.window)}
		return l.max >= 1
	}
	wc.n++
	return wc.n <= l.max
}

// janitor drops expired windows so the map stays bounded on long uptimes.
func (l *limiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for key, wc := range l.seen {
			if now.After(wc.resetAt) {
				delete(l.seen, key)
			}
		}
		l.mu.Unlock()
	}
}

// clientKey picks the client identity for rate limiting: the first
// X-Forwarded-For hop when present, otherwise the remote host.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit returns a middleware limiting each client to max requests per
// window, answering excess traffic with 429.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"status":429,"message":"Too Many Requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
