package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// staleAfter is how long an address may stay idle before its limiter state
// is dropped.
const staleAfter = 10 * time.Minute

// ipLimiter tracks the token bucket and last use for one client address.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Buckets for
// addresses that have gone quiet are evicted on the next sweep so the map
// does not grow without bound.
type IPRateLimiter struct {
	mu       sync.Mutex
	ips      map[string]*ipLimiter
	r        rate.Limit
	b        int
	lastScan time.Time
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:      make(map[string]*ipLimiter),
		r:        r,
		b:        b,
		lastScan: time.Now(),
	}
}

// Allow reports whether the given address may make a request right now.
func (i *IPRateLimiter) Allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	if now.Sub(i.lastScan) > staleAfter {
		for addr, l := range i.ips {
			if now.Sub(l.lastSeen) > staleAfter {
				delete(i.ips, addr)
			}
		}
		i.lastScan = now
	}

	l, ok := i.ips[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = l
	}
	l.lastSeen = now
	return l.limiter.Allow()
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
