package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const feedKeyPrefix = "feed:"

// RedisPageCache implements PageCache on a shared Redis instance. Envelopes
// are stored as JSON under "feed:<key>" with a per-entry TTL; InvalidateAll
// scans the prefix and deletes every page at once.
type RedisPageCache struct {
	rc *redis.Client
}

// NewRedisPageCache creates a new RedisPageCache
func NewRedisPageCache(rc *redis.Client) *RedisPageCache {
	return &RedisPageCache{rc: rc}
}

// GetPage retrieves a cached envelope, returning (nil, nil) on a miss
func (c *RedisPageCache) GetPage(ctx context.Context, key string) (*models.PostPage, error) {
	data, err := c.rc.Get(ctx, feedKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	var page models.PostPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}
	return &page, nil
}

// SetPage stores an envelope with the given TTL
func (c *RedisPageCache) SetPage(ctx context.Context, key string, page *models.PostPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := c.rc.Set(ctx, feedKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached page: %w", err)
	}
	return nil
}

// InvalidateAll deletes every cached feed page
func (c *RedisPageCache) InvalidateAll(ctx context.Context) error {
	iter := c.rc.Scan(ctx, 0, feedKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached pages: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rc.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cached pages: %w", err)
	}
	return nil
}
