package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance
var RedisClient *redis.Client
//Accessed as config.RedisClient in other files

// InitRedis creates RedisClient when REDIS_ADDR is configured; otherwise it
// stays nil and coverage publication is disabled.
func InitRedis() *redis.Client {
	cfg, err := LoadAppConfig()
	if err != nil || cfg.RedisAddr == "" {
		RedisClient = nil
		return nil
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	return RedisClient
}

func RedisCtx() context.Context {
	return context.Background()
}
