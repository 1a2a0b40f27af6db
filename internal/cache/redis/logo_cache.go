package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pactly/internal/config"
	"pactly/internal/logger"
	"pactly/internal/port"
)

const keyPrefix = "pactly:logo:"

type logoCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewLogoCache connects to Redis and returns a LogoCache. The connection is
// verified with a ping before returning.
func NewLogoCache(cfg *config.RedisConfig, log *logger.Logger) (port.LogoCache, func() error, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, nil, fmt.Errorf("redis address not configured")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewLogoCacheFromClient(rdb, cfg.LogoTTL, log), rdb.Close, nil
}

// NewLogoCacheFromClient wraps an existing client.
func NewLogoCacheFromClient(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) port.LogoCache {
	return &logoCache{
		log: log.With("service", "RedisLogoCache"),
		rdb: rdb,
		ttl: ttl,
	}
}

// Key returns the Redis key a logo reference is stored under. References
// are hashed so long URLs stay bounded.
func Key(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *logoCache) Get(ctx context.Context, ref string) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, Key(ref)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("logoCache.Get: %w", err)
	}
	return data, true, nil
}

func (c *logoCache) Set(ctx context.Context, ref string, png []byte) error {
	if err := c.rdb.Set(ctx, Key(ref), png, c.ttl).Err(); err != nil {
		return fmt.Errorf("logoCache.Set: %w", err)
	}
	c.log.Debug("logo cached", "bytes", len(png), "ttl", c.ttl)
	return nil
}
