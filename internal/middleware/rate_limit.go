package middleware

import (
	"net/http"
	"sync"
	"time"

	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = apperror.New(
	apperror.CodeTooMany,
	"too many requests",
	http.StatusTooManyRequests,
)

const (
	defaultLimiterIdleTTL = 10 * time.Minute
	defaultLimiterMaxKeys = 10000
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands out one token bucket per key (IP, user, employee).
// Buckets idle past the TTL are swept lazily and the key count is capped.
type KeyedRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	r         rate.Limit // requests per second
	b         int        // burst
	idleTTL   time.Duration
	maxKeys   int
	lastSweep time.Time
	now       func() time.Time
}

type LimiterOption func(*KeyedRateLimiter)

func WithIdleTTL(ttl time.Duration) LimiterOption {
	return func(l *KeyedRateLimiter) { l.idleTTL = ttl }
}

func WithMaxKeys(n int) LimiterOption {
	return func(l *KeyedRateLimiter) { l.maxKeys = n }
}

func WithClock(now func() time.Time) LimiterOption {
	return func(l *KeyedRateLimiter) { l.now = now }
}

func NewKeyedRateLimiter(r rate.Limit, b int, opts ...LimiterOption) *KeyedRateLimiter {
	l := &KeyedRateLimiter{
		entries: make(map[string]*limiterEntry),
		r:       r,
		b:       b,
		idleTTL: defaultLimiterIdleTTL,
		maxKeys: defaultLimiterMaxKeys,
		now:     time.Now,
	}
	// a bucket dropped before it refills would hand a throttled key a fresh burst
	if r > 0 && r != rate.Inf {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > l.idleTTL {
			l.idleTTL = refill
		}
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

func (l *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	if now.Sub(l.lastSweep) >= l.idleTTL || len(l.entries) >= l.maxKeys {
		l.sweepLocked(now)
	}
	if len(l.entries) >= l.maxKeys {
		l.evictOldestLocked()
	}

	e := &limiterEntry{limiter: rate.NewLimiter(l.r, l.b), lastSeen: now}
	l.entries[key] = e
	return e.limiter
}

// Sweep drops buckets idle longer than the TTL and returns how many were removed.
func (l *KeyedRateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(l.now())
}

func (l *KeyedRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyedRateLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, k)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}

func (l *KeyedRateLimiter) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range l.entries {
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = k, e.lastSeen
		}
	}
	delete(l.entries, oldestKey)
}

func rateLimitBy(r rate.Limit, b int, key func(c *gin.Context) string) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(k).Allow() {
			response.AbortFail(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByIP guards unauthenticated endpoints such as logins.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimitBy(r, b, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitByUser keys on the authenticated user; anonymous requests pass through.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimitBy(r, b, func(c *gin.Context) string { return c.GetString("user_id") })
}

// RateLimitByEmployee keys on the portal employee.
func RateLimitByEmployee(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimitBy(r, b, func(c *gin.Context) string { return c.GetString("employee_id") })
}
