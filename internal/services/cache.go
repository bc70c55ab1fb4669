package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resumelens/resume-analyzer/internal/config"
)

// ResultCache stores serialized analysis responses under content
// fingerprints. Caching is strictly best-effort: Get reports a miss and Put
// is a no-op whenever the backend is unavailable, and neither ever returns
// an error to the caller.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

type disabledCache struct{}

// NewResultCache selects the cache implementation once at startup. With no
// Redis host configured, or when the initial ping fails, the cache stays
// disabled for the process lifetime.
func NewResultCache(cfg *config.Config, logger *zap.Logger) ResultCache {
	if !cfg.CacheEnabled() {
		logger.Info("result cache disabled: no redis host configured")
		return &disabledCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("result cache disabled: redis unreachable",
			zap.String("addr", cfg.RedisAddr()),
			zap.Error(err))
		return &disabledCache{}
	}

	logger.Info("result cache connected", zap.String("addr", cfg.RedisAddr()))
	return &redisCache{client: client, logger: logger}
}

// NewRedisResultCache wraps an existing client. Used by tests and callers
// that manage the connection themselves.
func NewRedisResultCache(client *redis.Client, logger *zap.Logger) ResultCache {
	return &redisCache{client: client, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return value, true
}

func (c *redisCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache put failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *disabledCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (c *disabledCache) Put(context.Context, string, []byte, time.Duration) {}
