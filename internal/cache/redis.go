package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis is the shared-cache flavour of Store. Misses and transport errors
// look the same to the caller; the source of truth is always the database.
type Redis struct {
	redisdb *redis.Client
	ttl     time.Duration
	log     *slog.Logger
}

func NewRedis(cfg RedisConfig, ttl time.Duration, log *slog.Logger) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{redisdb: redisdb, ttl: ttl, log: log}
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.redisdb.Get(ctx, key).Bytes()

	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "key", key, "err", err)
		}

		return nil, false
	}

	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte) {
	err := c.redisdb.Set(ctx, key, val, c.ttl).Err()

	if err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	err := c.redisdb.Del(ctx, key).Err()

	if err != nil {
		c.log.Warn("cache delete failed", "key", key, "err", err)
	}
}

// this ping function checks redis connectivity

func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

// this closes the client

func (c *Redis) Close() error {
	return c.redisdb.Close()
}
