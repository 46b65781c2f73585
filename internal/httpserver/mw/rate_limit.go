package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/utils"
)

type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int // cap on tracked clients; the least recently seen is evicted (0 = unbounded)
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool             // resolve IP from proxy headers when true
	Now               func() time.Time // defaults to time.Now
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	c.Burst = max(c.Burst, 1)
	c.RefillPerIPPerMin = max(c.RefillPerIPPerMin, 1)
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// verdict is the outcome of one token request.
type verdict struct {
	allowed    bool
	remaining  int
	retryAfter time.Duration
}

type bucket struct {
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

// limiter is a per-key token bucket. A single mutex guards every bucket:
// the limiter only sits in front of the bearer routes, which see little
// traffic.
type limiter struct {
	cfg       RateLimitConfig
	perSecond float64
	capacity  float64

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	cfg = cfg.withDefaults()
	return &limiter{
		cfg:       cfg,
		perSecond: float64(cfg.RefillPerIPPerMin) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket),
		lastSweep: cfg.Now(),
	}
}

func (l *limiter) take(key string, now time.Time) verdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	full := l.cfg.MaxEntries > 0 && len(l.buckets) >= l.cfg.MaxEntries
	if full || now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxEntries > 0 && len(l.buckets) >= l.cfg.MaxEntries {
			l.evictOldest()
		}
		b = &bucket{tokens: l.capacity, updated: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSecond)
		b.updated = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return verdict{allowed: true, remaining: int(b.tokens)}
	}

	wait := math.Ceil((1 - b.tokens) / l.perSecond)
	return verdict{retryAfter: time.Duration(max(wait, 1)) * time.Second}
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// evictOldest drops the least recently seen bucket. Linear in the number
// of buckets; only reached when the map is full of non-idle clients.
func (l *limiter) evictOldest() {
	var (
		oldest string
		seen   time.Time
		found  bool
	)
	for key, b := range l.buckets {
		if !found || b.lastSeen.Before(seen) {
			oldest, seen, found = key, b.lastSeen, true
		}
	}
	if found {
		delete(l.buckets, oldest)
	}
}

// RateLimit applies a per-client-IP token bucket. Rejected requests get a
// JSON 429 with Retry-After.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := l.take(utils.ClientIP(r, l.cfg.TrustProxy), l.cfg.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
			if !v.allowed {
				h.Set("Retry-After", strconv.Itoa(int(v.retryAfter/time.Second)))
				deny(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
