package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/infra/config"
)

const (
	poolSize     = 10
	minIdleConns = 2
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
)

// Client wraps redis.Client with an initial connectivity check and lifecycle
// management. It backs the login rate limiter only.
type Client struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient opens the connection pool and pings once; an unreachable Redis
// surfaces at startup rather than on the first login.
func NewClient(cfg config.RedisSettings, logger *zap.Logger) (*Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
		MaxRetries:   3,

		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,

		ConnMaxIdleTime: 5 * time.Minute,
	}

	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("connected to redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
	)

	return &Client{client: client, logger: logger}, nil
}

// Client returns the underlying redis.Client for repositories to use.
func (c *Client) Client() *redis.Client {
	return c.client
}

// HealthCheck pings Redis; used by the readiness endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check: %w", err)
	}
	return nil
}

// Close shuts the connection pool down.
func (c *Client) Close() error {
	c.logger.Info("closing redis connection")
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
