package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Limiter decides whether the client identified by key may issue one more
// request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter rejects clients that exhausted their budget with 429. A
// limiter error lets the request through.
func RateLimiter(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, please slow down."))
			return
		}
		c.Next()
	}
}

// ── In-memory limiter ─────────────────────────────────────────────────────────

const idleTTL = 5 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket per key. Buckets idle for
// longer than idleTTL are dropped on the next sweep.
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter allows perMinute requests per key, refilled evenly, with
// the whole minute's budget available as a burst.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     perMinute,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > idleTTL {
		m.sweep(now)
	}

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

func (m *MemoryLimiter) sweep(now time.Time) {
	purged := 0
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(m.visitors, key)
			purged++
		}
	}
	m.lastSweep = now
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(m.visitors)).
			Msg("rate limiter purged")
	}
}

// ── Redis limiter ─────────────────────────────────────────────────────────────

// RedisLimiter counts requests per key in fixed one-minute windows shared by
// every instance pointing at the same redis.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, perMinute int) *RedisLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RedisLimiter{rdb: rdb, limit: int64(perMinute), window: time.Minute, now: time.Now}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().Unix() / int64(r.window.Seconds())
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= r.limit, nil
}

// ── Fallback ──────────────────────────────────────────────────────────────────

// FallbackLimiter consults primary through a circuit breaker. After five
// consecutive primary failures the breaker opens for thirty seconds and
// fallback answers instead, so a dead redis costs no per-request timeout.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	cb       *gobreaker.CircuitBreaker
}

func NewFallbackLimiter(primary, fallback Limiter) *FallbackLimiter {
	settings := gobreaker.Settings{
		Name:        "rate-limiter",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	return &FallbackLimiter{primary: primary, fallback: fallback, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (f *FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := f.cb.Execute(func() (interface{}, error) {
		return f.primary.Allow(ctx, key)
	})
	if err != nil {
		return f.fallback.Allow(ctx, key)
	}
	return res.(bool), nil
}
