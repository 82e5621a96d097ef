package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "finapp/internal/errors"
	"finapp/internal/logger"
)

// Buckets untouched for bucketIdleTTL are dropped. Sweeps run at most once
// per bucketIdleTTL, piggybacking on incoming requests.
const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= bucketIdleTTL {
		r.sweep(now)
	}

	b, ok := r.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops idle buckets. The caller holds r.mu.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, b := range r.buckets {
		if now.Sub(b.lastSeen) >= bucketIdleTTL {
			delete(r.buckets, ip)
		}
	}
	r.lastSweep = now
}

// size reports the number of tracked clients.
func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

// Middleware rejects requests beyond the client's budget with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.allow(ip) {
			logger.Get().Warnw("rate limit exceeded", "client_ip", ip, "path", c.Request.URL.Path)
			abortWithAppError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
