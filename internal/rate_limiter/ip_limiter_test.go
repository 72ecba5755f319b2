package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newLimiter(t *testing.T, requests int) *IPRateLimiter {
	t.Helper()
	rl := NewIPRateLimiter(requests, time.Minute, CleanupOpts{TTL: time.Minute, Interval: time.Hour})
	t.Cleanup(rl.Stop)
	return rl
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"remote addr", "10.0.0.1:5000", "", "10.0.0.1"},
		{"forwarded", "10.0.0.1:5000", "1.1.1.1, 2.2.2.2", "2.2.2.2"},
		{"no port", "10.0.0.9", "", "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/account/login", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	rl := newLimiter(t, 2)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string, htmx bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/account/login", nil)
		req.RemoteAddr = remote
		if htmx {
			req.Header.Set("HX-Request", "true")
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1", false).Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2", false).Code)
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:3", false).Code)

	rec := do("10.0.0.1:4", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Muitas tentativas")

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1", false).Code)
}

func TestEvict(t *testing.T) {
	rl := newLimiter(t, 1)
	rl.Allow("10.0.0.1")

	rl.evict(time.Now())
	assert.Len(t, rl.buckets, 1)

	rl.evict(time.Now().Add(2 * time.Minute))
	assert.Empty(t, rl.buckets)
}
