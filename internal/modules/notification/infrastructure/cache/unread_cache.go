package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisUnreadCache keeps per-user unread counts in Redis. It is a
// performance shortcut over the COUNT(*) query, never a second source of
// truth: every notification mutation invalidates the entry and the next
// read recomputes from the database.
type RedisUnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUnreadCache(client *redis.Client, ttl time.Duration) *RedisUnreadCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisUnreadCache{client: client, ttl: ttl}
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

func (c *RedisUnreadCache) Get(ctx context.Context, userID uuid.UUID) (int, bool) {
	val, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *RedisUnreadCache) Set(ctx context.Context, userID uuid.UUID, count int) {
	c.client.Set(ctx, unreadKey(userID), count, c.ttl)
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.client.Del(ctx, unreadKey(userID))
}
