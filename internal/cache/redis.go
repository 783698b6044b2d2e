package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKV is the subset of the go-redis client the cache uses.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis shares the response cache between replicas. Expiry is delegated to
// Redis, so an entry lives for the TTL remaining after its storedAt time.
type Redis struct {
	client RedisKV
	ttl    time.Duration
	now    Clock
	prefix string
	logger *zap.SugaredLogger
}

// NewRedis wraps a go-redis client. Keys are namespaced with prefix.
func NewRedis(client RedisKV, ttl time.Duration, prefix string, clock Clock, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		now:    clock,
		prefix: prefix,
		logger: logger.Sugar(),
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warnw("response cache read failed", "key", key, "error", err)
		}
		cacheMisses.WithLabelValues("redis").Inc()
		return nil, false
	}
	cacheHits.WithLabelValues("redis").Inc()
	return b, true
}

func (r *Redis) Put(ctx context.Context, key string, value []byte, storedAt time.Time) {
	remaining := r.ttl - r.now().Sub(storedAt)
	if remaining <= 0 {
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, value, remaining).Err(); err != nil {
		r.logger.Warnw("response cache write failed", "key", key, "error", err)
	}
}
