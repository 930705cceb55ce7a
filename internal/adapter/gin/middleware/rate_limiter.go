package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// RateLimiter implements per-client HTTP rate limiting using a token
// bucket kept in Redis, so the budget holds across replicas.
type RateLimiter struct {
	client *redis.Client
	config RateLimiterConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new rate limiter. client may be nil when the
// limiter is disabled.
func NewRateLimiter(client *redis.Client, config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		log:    log,
	}
}

// Token bucket implemented in Lua for atomicity.
// Bucket state: {last_refill_time, current_tokens}.
const tokenBucketScript = `
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])         -- tokens per second
	local capacity = tonumber(ARGV[2])     -- max tokens in bucket
	local now = tonumber(ARGV[3])          -- current timestamp
	local requested = tonumber(ARGV[4])    -- tokens requested (always 1)

	local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
	local last_refill = tonumber(bucket[1]) or now
	local tokens = tonumber(bucket[2]) or capacity

	local elapsed = math.max(0, now - last_refill)
	tokens = math.min(capacity, tokens + elapsed * rate)

	if tokens >= requested then
		tokens = tokens - requested
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 1
	else
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 0
	end
`

// Middleware returns the gin handler enforcing the limit. Redis errors
// fail open: an unreachable limiter must not take the API down with it.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.config.Enabled || rl.client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, c.FullPath(), c.ClientIP())

		now := float64(rl.client.Time(c.Request.Context()).Val().Unix())

		allowed, err := rl.client.Eval(c.Request.Context(), tokenBucketScript, []string{key},
			rl.config.RequestsPerSecond,
			rl.config.BurstCapacity,
			now,
			1,
		).Int64()
		if err != nil {
			rl.log.Warn("rate limiter redis error, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if allowed == 0 {
			rl.log.Warn("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("rate limit exceeded: %.2f requests/second (burst %d)", rl.config.RequestsPerSecond, rl.config.BurstCapacity),
				"code":    "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}
