package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-profile-service/cmd/api/infrastructure"
	"user-profile-service/internal/adapter/cache"
	"user-profile-service/internal/adapter/db/postgres"
	ginhandler "user-profile-service/internal/adapter/gin/handler"
	"user-profile-service/internal/adapter/gin/middleware"
	"user-profile-service/internal/adapter/repository/cached"
	"user-profile-service/internal/config"
	"user-profile-service/internal/usecase/user"
	redisclient "user-profile-service/pkg/redis"
)

// Container holds all application dependencies.
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserUC        user.Usecase
	RateLimiter   *middleware.RateLimiter
	UserHandler   *ginhandler.UserHandler
	HealthHandler *ginhandler.HealthHandler
}

// NewContainer creates and initializes all application dependencies.
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Repository, optionally wrapped with the cache-aside decorator
	var repo user.Repository = postgres.NewUserRepoPG(db, l)
	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, userCache, l)
	}

	userUC := user.New(repo, l)

	rateLimiterClient := (*redisclient.Client)(nil)
	if rdb != nil {
		rateLimiterClient = rdb
	}
	if cfg.RateLimit.Enabled && rateLimiterClient == nil {
		l.Warn("rate limiting enabled but Redis is disabled, limiter will not run")
	}
	var rateLimiter *middleware.RateLimiter
	if rateLimiterClient != nil {
		rateLimiter = middleware.NewRateLimiter(rateLimiterClient.Client, middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		}, l)
	} else {
		rateLimiter = middleware.NewRateLimiter(nil, middleware.RateLimiterConfig{Enabled: false}, l)
	}

	userHandler := ginhandler.NewUserHandler(userUC, l, cfg.IsProduction())
	healthHandler := ginhandler.NewHealthHandler(db, rdb, cfg.Logger.ServiceName, l)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		RedisClient:   rdb,
		UserUC:        userUC,
		RateLimiter:   rateLimiter,
		UserHandler:   userHandler,
		HealthHandler: healthHandler,
	}, nil
}

// Close closes all resources held by the container.
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
