// Package cache implements the Redis-backed receipt cache. Extraction is a
// paid model call, so repeat parses of the same image are served from here.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tabsplit/internal/config"
	"tabsplit/internal/domain"
	"tabsplit/internal/port"
)

type receiptCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// NewReceiptCache creates a Redis-backed ReceiptCache. It pings the server
// once so a bad address fails at startup, not on first use.
func NewReceiptCache(cfg *config.RedisConfig, log *zap.SugaredLogger) (port.ReceiptCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &receiptCache{client: client, ttl: cfg.TTL, log: log}, nil
}

func (c *receiptCache) Get(ctx context.Context, key string) (*domain.Receipt, bool) {
	raw, err := c.client.Get(ctx, "receipt:"+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnw("Receipt cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var receipt domain.Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		c.log.Warnw("Receipt cache entry corrupt, treating as miss", "key", key, "error", err)
		return nil, false
	}
	return &receipt, true
}

func (c *receiptCache) Set(ctx context.Context, key string, receipt *domain.Receipt) {
	raw, err := json.Marshal(receipt)
	if err != nil {
		c.log.Warnw("Receipt cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, "receipt:"+key, raw, c.ttl).Err(); err != nil {
		c.log.Warnw("Receipt cache write failed", "key", key, "error", err)
	}
}
