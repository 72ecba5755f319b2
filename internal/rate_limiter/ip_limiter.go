// Package ratelimiter throttles login attempts per client IP.
package ratelimiter

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	viewAuth "github.com/johndosdos/escola/components/auth"
)

const tooManyRequests = "Muitas tentativas. Tente novamente mais tarde."

type CleanupOpts struct {
	TTL      time.Duration
	Interval time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP and forgets clients
// not seen for TTL.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   rate.Limit
	burst   int
	cancel  context.CancelFunc
	CleanupOpts
}

// NewIPRateLimiter allows requests per window for each IP. Stop must be
// called to end the cleanup goroutine.
func NewIPRateLimiter(requests int, window time.Duration, opts CleanupOpts) *IPRateLimiter {
	requests = max(requests, 1)
	ctx, cancel := context.WithCancel(context.Background())
	rl := &IPRateLimiter{
		buckets:     make(map[string]*bucket),
		every:       rate.Every(window / time.Duration(requests)),
		burst:       requests,
		cancel:      cancel,
		CleanupOpts: opts,
	}

	go rl.sweep(ctx)

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *IPRateLimiter) Stop() {
	rl.cancel()
}

func (rl *IPRateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(rl.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evict(now)
		}
	}
}

func (rl *IPRateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.TTL {
			delete(rl.buckets, ip)
		}
	}
}

// ClientIP prefers the last X-Forwarded-For hop, the one added by our own
// proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		//nolint:gosec
		slog.Warn("invalid argument for net.SplitHostPort()",
			slog.String("remote_addr", r.RemoteAddr))
		return r.RemoteAddr
	}
	return host
}

// Allow takes a token from ip's bucket.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// Middleware rejects requests over the limit. htmx requests get the login
// error fragment so the message shows inside the form.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if rl.Allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		slog.WarnContext(r.Context(), "rate limit exceeded",
			"ip", ip,
			"path", r.URL.Path)

		if r.Header.Get("HX-Request") != "true" {
			http.Error(w, tooManyRequests, http.StatusTooManyRequests)
			return
		}
		if err := viewAuth.ErrorMsgAuth(tooManyRequests).Render(r.Context(), w); err != nil {
			slog.ErrorContext(r.Context(), "failed to render error component",
				"error", err,
				"ip", ip)
		}
	})
}
