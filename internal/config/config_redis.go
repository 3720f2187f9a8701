// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// config_redis.go: Redis connection helpers, used by the HTTP rate limiter.

// InitRedis initializes a Redis connection from environment variables,
// calling log.Fatal on error. Prefer InitRedisWithError.
func InitRedis() *redis.Client {
	ctx := context.Background()

	provider := NewRedisProvider(os.Getenv("STQ_ORDERS_REDIS_ADDR"), os.Getenv("STQ_ORDERS_REDIS_USERNAME"), os.Getenv("STQ_ORDERS_REDIS_PASSWORD"))
	client, err := provider.Connect(ctx)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	log.Println("Connected to Redis successfully...")
	return client.(*redis.Client)
}

// InitRedisWithError initializes a Redis connection, returning any error
// instead of calling log.Fatal.
func InitRedisWithError(ctx context.Context) (redis.Cmdable, error) {
	provider := NewRedisProvider(os.Getenv("STQ_ORDERS_REDIS_ADDR"), os.Getenv("STQ_ORDERS_REDIS_USERNAME"), os.Getenv("STQ_ORDERS_REDIS_PASSWORD"))
	return provider.Connect(ctx)
}
