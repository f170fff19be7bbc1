package middleware

import (
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"theatre_service/config"
	"theatre_service/database"
)

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        config.ConfigBool("RATE_LIMIT_ENABLED", true),
		Capacity:       config.ConfigInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   config.ConfigInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: config.ConfigDuration("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            config.ConfigDuration("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         "rl",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

var limiterScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit is a per-ip-and-route token bucket backed by Redis. Passes
// everything through when rate limiting is disabled or Redis is absent.
func RateLimit() fiber.Handler {
	cfg := LoadRateLimitConfig()

	return func(c *fiber.Ctx) error {
		rdb := database.Redis
		if !cfg.Enabled || rdb == nil {
			return c.Next()
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.IP(), c.Path())
		now := time.Now()

		vals, err := limiterScript.Run(c.Context(), rdb, []string{key},
			now.UnixMilli(),
			cfg.Capacity,
			cfg.RefillTokens,
			cfg.RefillInterval.Milliseconds(),
			int64(cfg.TTL/time.Second),
		).Int64Slice()
		if err != nil || len(vals) < 3 {
			// limiter failure never blocks traffic
			return c.Next()
		}

		if vals[0] == 0 {
			retryAfter := int(math.Ceil(float64(vals[2]) / 1000.0))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
			})
		}

		return c.Next()
	}
}
