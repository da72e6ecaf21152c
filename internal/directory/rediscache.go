package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tritonops/admin-gateway/internal/config"
	"github.com/tritonops/admin-gateway/internal/domain"
)

const redisKeyPrefix = "principal:"

// RedisCache stores principals in Redis with a TTL, for deployments that run
// more than one gateway instance.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to Redis using the provided configuration.
func NewRedisCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached principal for identity. Redis failures are logged
// and reported as a miss; the cache is an optimization, not a dependency.
func (c *RedisCache) Get(ctx context.Context, identity string) (*domain.Principal, bool) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+identity).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("principal cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var principal domain.Principal
	if err := json.Unmarshal(payload, &principal); err != nil {
		c.logger.Warn("principal cache entry corrupt", zap.String("identity", identity), zap.Error(err))
		return nil, false
	}
	return &principal, true
}

// Put stores the principal, replacing any prior entry for the identity.
func (c *RedisCache) Put(ctx context.Context, principal *domain.Principal) {
	if principal == nil {
		return
	}
	payload, err := json.Marshal(principal)
	if err != nil {
		c.logger.Warn("principal cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+principal.ID.String(), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("principal cache write failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
