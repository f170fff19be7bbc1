package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"theatre_service/config"
)

var Redis *redis.Client

// ConnectRedis opens the shared Redis client used by the rate limiter.
// Redis is optional: when REDIS_ADDR is unset the limiter is disabled.
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       config.ConfigInt("REDIS_DB", 0),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("redis unreachable, rate limiting disabled:", err)
		return
	}

	Redis = client
	log.Println("Connection Opened to Redis")
}
