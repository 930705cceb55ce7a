// Package redis wraps the go-redis client behind the connection settings
// the service actually uses. Both the user cache and the rate limiter
// share one client through this wrapper.
package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Fixed operation deadlines; a stalled cache call must stay well under the
// HTTP handler's own timeout so requests degrade to the database instead
// of hanging.
const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	poolTimeout  = 4 * time.Second
)

// Config holds the Redis connection settings sourced from the application
// configuration.
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Client is the shared Redis handle. The embedded client exposes the full
// command surface for the cache and limiter adapters.
type Client struct {
	*redis.Client
	log *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a bounded
// ping before handing the client out. A Redis that cannot be reached at
// startup is a wiring error, not something to discover on the first request.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConn,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolTimeout:  poolTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.addr(), err)
	}

	log.Info("redis connected",
		zap.String("addr", cfg.addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return &Client{Client: rdb, log: log}, nil
}

// Ping reports whether the connection is alive, used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	c.log.Info("closing redis connection")
	return c.Client.Close()
}
