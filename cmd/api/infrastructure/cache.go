package infrastructure

import (
	"fmt"

	"go.uber.org/zap"

	"user-profile-service/internal/config"
	redisclient "user-profile-service/pkg/redis"
)

// NewRedisClient creates a new Redis client with configuration. Returns
// (nil, nil) when the cache is disabled.
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.Redis.Enabled {
		l.Info("Redis disabled, running without cache")
		return nil, nil
	}

	rdb, err := redisclient.NewClient(redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
