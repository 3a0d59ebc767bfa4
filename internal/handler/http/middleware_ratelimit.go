// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// limiterTTL is how long an idle client's bucket is kept.
	limiterTTL = 10 * time.Minute

	// authRoutes is the mount point of the limited group and the only
	// route label reported for rejected requests.
	authRoutes = "/api/auth"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Idle buckets are
// swept on access once per limiterTTL, so no background goroutine is needed.
type ipRateLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// newIPRateLimiter returns nil when rps or burst is not positive, which
// disables limiting.
func newIPRateLimiter(rps float64, burst int, now func() time.Time) *ipRateLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &ipRateLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		now:       now,
		clients:   make(map[string]*clientLimiter),
		lastSweep: now(),
	}
}

// allow reports whether a request from ip may proceed.
func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterTTL {
		for key, c := range l.clients {
			if now.Sub(c.lastAccess) > limiterTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastAccess = now

	return c.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// retryAfter is the number of whole seconds until one token is refilled.
func (l *ipRateLimiter) retryAfter() int {
	return max(1, int(math.Ceil(1/float64(l.rps))))
}

// withRateLimit rejects requests beyond the per-IP budget with 429. It must
// run after middleware.RealIP so that RemoteAddr holds the client address.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.allow(clientIP(r)) {
			h.metrics.RecordRateLimited(authRoutes)
			w.Header().Set("Retry-After", strconv.Itoa(h.limiter.retryAfter()))
			writeError(w, r, ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
