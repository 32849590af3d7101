package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"playreel/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate limit check. RetryAfter is only
// meaningful when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter throttles repeated actions. A key identifies the
// (action, user, resource) tuple being throttled; calls closer together
// than minInterval are rejected.
type Limiter interface {
	Allow(ctx context.Context, key string, minInterval time.Duration) (Decision, error)
}

// MemoryLimiter is a process-local Limiter backed by a map from key to
// the timestamp of the last allowed call. It is correct for a single
// instance only; use RedisLimiter behind multiple replicas.
type MemoryLimiter struct {
	mu     sync.Mutex
	last   map[string]time.Time
	timers map[string]*time.Timer
	now    func() time.Time
}

// NewMemoryLimiter returns a MemoryLimiter ready for use.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		last:   make(map[string]time.Time),
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
}

// Allow checks the key against minInterval. A rejected call leaves the
// stored timestamp untouched, so the window is measured from the last
// allowed call. Never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string, minInterval time.Duration) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < minInterval {
			return Decision{Allowed: false, RetryAfter: minInterval - elapsed}, nil
		}
	}

	l.last[key] = now
	l.scheduleCleanup(key, minInterval)
	return Decision{Allowed: true}, nil
}

// scheduleCleanup drops the key after minInterval unless a newer allowed
// call has refreshed it, bounding map growth. Caller holds l.mu.
func (l *MemoryLimiter) scheduleCleanup(key string, minInterval time.Duration) {
	if t, ok := l.timers[key]; ok {
		t.Stop()
	}
	l.timers[key] = time.AfterFunc(minInterval, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if last, ok := l.last[key]; ok && l.now().Sub(last) >= minInterval {
			delete(l.last, key)
			delete(l.timers, key)
		}
	})
}

// Len reports the number of tracked keys. Used by tests and metrics.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.last)
}

// RedisLimiter is a Limiter backed by a shared Redis instance, giving a
// correct guarantee across multiple stateless replicas. The key is set
// with NX and a TTL of minInterval; a conflicting key's remaining TTL is
// the retry hint.
type RedisLimiter struct {
	rdb *redis.Client
}

// NewRedisLimiter returns a RedisLimiter over the given client.
func NewRedisLimiter(rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, minInterval time.Duration) (Decision, error) {
	if l.rdb == nil {
		return Decision{}, errors.New("redis client is nil")
	}

	rkey := "rl:" + key
	ok, err := l.rdb.SetNX(ctx, rkey, 1, minInterval).Result()
	if err != nil {
		return Decision{}, err
	}
	if ok {
		return Decision{Allowed: true}, nil
	}

	ttl, err := l.rdb.PTTL(ctx, rkey).Result()
	if err != nil || ttl < 0 {
		ttl = minInterval
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

// PerUserRateLimit returns a Fiber middleware throttling the named action
// per authenticated user per resource. The rate limit key is
// "<action>:<userId>:<resourceId>" where the resource id comes from the
// route parameter. Limiter errors fail open: the request proceeds and the
// failure is logged.
func PerUserRateLimit(l Limiter, minInterval time.Duration, action, resourceParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(string)
		if userID == "" {
			// Auth middleware rejects unauthenticated requests before this runs.
			return c.Next()
		}

		key := fmt.Sprintf("%s:%s:%s", action, userID, c.Params(resourceParam))
		decision, err := l.Allow(c.UserContext(), key, minInterval)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limiter unavailable, failing open",
				slog.String("action", action),
				slog.String("error", err.Error()),
			)
			return c.Next()
		}

		if !decision.Allowed {
			RateLimitRejections.WithLabelValues(action).Inc()
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError(decision.RetryAfter.Milliseconds()))
		}
		return c.Next()
	}
}
