package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"

	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/resilience"
)

const keyPrefix = "lews:ratelimit"

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMinute int           // per client IP
	BurstMultiplier   int           // burst capacity as a multiple of the per-minute rate
	CleanupInterval   time.Duration // how often idle fallback limiters are evicted
	IdleTTL           time.Duration // fallback limiters unused this long are evicted
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		BurstMultiplier:   2,
		CleanupInterval:   10 * time.Minute,
		IdleTTL:           time.Hour,
	}
}

// Rate is a budget of Limit requests per Period with an optional burst.
// A zero Burst means Limit.
type Rate struct {
	Limit  int
	Burst  int
	Period time.Duration
}

func (r Rate) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type fallbackEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides distributed rate limiting with Redis and in-memory fallback
type RateLimiter struct {
	redisLimiter *redis_rate.Limiter
	redisClient  *RedisClient
	breaker      *resilience.Breaker
	config       Config
	metrics      *monitoring.Metrics

	fallbackLimiters map[string]*fallbackEntry
	fallbackMutex    sync.Mutex

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter with Redis and in-memory fallback.
// Close must be called to stop the cleanup goroutine.
func NewRateLimiter(redisClient *RedisClient, config Config, metrics *monitoring.Metrics) *RateLimiter {
	defaults := DefaultConfig()
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = defaults.IdleTTL
	}
	if config.BurstMultiplier <= 0 {
		config.BurstMultiplier = 1
	}

	rl := &RateLimiter{
		redisClient:      redisClient,
		config:           config,
		metrics:          metrics,
		fallbackLimiters: make(map[string]*fallbackEntry),
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}

	if redisClient.IsEnabled() {
		rl.redisLimiter = redis_rate.NewLimiter(redisClient.GetClient())
		rl.breaker = resilience.NewBreaker(resilience.BreakerConfig{})
		slog.Info("Redis rate limiter initialized")
	} else {
		slog.Info("Redis unavailable, using in-memory rate limiting only")
	}

	go rl.cleanupFallbackLimiters()

	return rl
}

// Close stops background cleanup. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
		<-rl.done
	})
}

// Config returns the effective configuration
func (rl *RateLimiter) Config() Config {
	return rl.config
}

func ipKey(ip string) string {
	return fmt.Sprintf("%s:ip:%s", keyPrefix, ip)
}

// AllowIP checks the per-minute budget of a client address
func (rl *RateLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	return rl.Allow(ctx, ipKey(ip), Rate{
		Limit:  rl.config.RequestsPerMinute,
		Burst:  rl.config.RequestsPerMinute * rl.config.BurstMultiplier,
		Period: time.Minute,
	})
}

// Allow spends one request from key's budget, using Redis when available
func (rl *RateLimiter) Allow(ctx context.Context, key string, r Rate) (*Result, error) {
	if r.Limit <= 0 || r.Period <= 0 {
		return nil, fmt.Errorf("invalid rate %d per %s", r.Limit, r.Period)
	}

	if rl.redisClient.IsEnabled() && rl.redisLimiter != nil {
		var result *Result
		err := rl.breaker.Call(func() error {
			var err error
			result, err = rl.allowRedis(ctx, key, r)
			return err
		})
		if err == nil {
			return result, nil
		}
		// an open breaker skips Redis without waiting on its timeouts
		if !errors.Is(err, resilience.ErrOpen) {
			slog.Warn("Redis rate limit check failed, using fallback", "key", key, "error", err)
		}
		if rl.metrics != nil {
			rl.metrics.IncrementRateLimitFallback()
		}
	}

	return rl.allowFallback(key, r), nil
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string, r Rate) (*Result, error) {
	res, err := rl.redisLimiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   r.Limit,
		Burst:  r.burst(),
		Period: r.Period,
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	result := &Result{
		Allowed:   res.Allowed > 0,
		Limit:     res.Limit.Rate,
		Remaining: res.Remaining,
		ResetAt:   time.Now().Add(res.ResetAfter),
	}
	if !result.Allowed {
		result.RetryAfter = res.RetryAfter
	}
	return result, nil
}

// allowFallback uses an in-memory token bucket per key
func (rl *RateLimiter) allowFallback(key string, r Rate) *Result {
	now := time.Now()

	rl.fallbackMutex.Lock()
	entry, exists := rl.fallbackLimiters[key]
	if !exists {
		rps := rate.Limit(float64(r.Limit) / r.Period.Seconds())
		entry = &fallbackEntry{limiter: rate.NewLimiter(rps, r.burst())}
		rl.fallbackLimiters[key] = entry
	}
	entry.lastSeen = now
	limiter := entry.limiter
	rl.fallbackMutex.Unlock()

	result := &Result{
		Allowed: limiter.AllowN(now, 1),
		Limit:   r.Limit,
	}

	tokens := limiter.TokensAt(now)
	if tokens > 0 {
		result.Remaining = int(tokens)
	}

	// time until one full token is available again
	perToken := time.Duration(float64(r.Period) / float64(r.Limit))
	if result.Allowed {
		result.ResetAt = now.Add(perToken)
		return result
	}

	deficit := 1 - tokens
	result.RetryAfter = time.Duration(deficit * float64(perToken))
	if result.RetryAfter <= 0 {
		result.RetryAfter = perToken
	}
	result.ResetAt = now.Add(result.RetryAfter)
	return result
}

// Reset forgets the budget of key in Redis and in memory
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	rl.fallbackMutex.Lock()
	delete(rl.fallbackLimiters, key)
	rl.fallbackMutex.Unlock()

	if rl.redisClient.IsEnabled() && rl.redisLimiter != nil {
		if err := rl.redisLimiter.Reset(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// ResetIP forgets the per-minute budget of ip
func (rl *RateLimiter) ResetIP(ctx context.Context, ip string) error {
	return rl.Reset(ctx, ipKey(ip))
}

func (rl *RateLimiter) cleanupFallbackLimiters() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			if n := rl.evictIdle(now); n > 0 {
				slog.Debug("Evicted idle fallback rate limiters", "count", n)
			}
		}
	}
}

// evictIdle drops limiters not used since now-IdleTTL and returns how many went
func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.fallbackMutex.Lock()
	defer rl.fallbackMutex.Unlock()

	evicted := 0
	for key, entry := range rl.fallbackLimiters {
		if now.Sub(entry.lastSeen) > rl.config.IdleTTL {
			delete(rl.fallbackLimiters, key)
			evicted++
		}
	}
	return evicted
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.fallbackMutex.Lock()
	fallbackCount := len(rl.fallbackLimiters)
	rl.fallbackMutex.Unlock()

	stats := map[string]interface{}{
		"redis_enabled":       rl.redisClient.IsEnabled(),
		"fallback_limiters":   fallbackCount,
		"requests_per_minute": rl.config.RequestsPerMinute,
		"burst":               rl.config.RequestsPerMinute * rl.config.BurstMultiplier,
	}

	if rl.redisClient.IsEnabled() {
		stats["redis_pool"] = rl.redisClient.GetPoolStats()
	}
	if rl.breaker != nil {
		stats["redis_breaker"] = rl.breaker.Stats()
	}

	return stats
}
