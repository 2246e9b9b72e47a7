package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/pantrybase/recipebox/config"
	"github.com/pantrybase/recipebox/internal/database"
)

// redisFromConfig returns nil without error when redis is not
// configured; redis-backed features are then disabled.
func redisFromConfig(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	return database.NewRedisClient(cfg)
}
