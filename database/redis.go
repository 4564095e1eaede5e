package database

import (
	"context"
	"os"
	"time"

	"courier-admin/logger"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the optional cache. A missing REDIS_ADDR or a failed
// ping returns nil; callers treat a nil client as "no cache".
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, running without cache")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warning("Redis unreachable, running without cache: " + err.Error())
		return nil
	}

	logger.Success("Connected to Redis at " + addr)
	return client
}
