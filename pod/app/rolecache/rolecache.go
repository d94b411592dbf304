// Package rolecache keeps a short-TTL copy of each user's stored role
// in redis. Admin-gated operations re-check the store through it, so a
// demotion bites within the cache TTL instead of the full token
// lifetime. All methods are nil-receiver safe; without redis the
// callers fall through to the store directly.
package rolecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"panda-gate/roles"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func key(userID string) string { return "role:" + userID }

func (c *Cache) Role(ctx context.Context, userID string) (roles.Role, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key(userID)).Result()
	if err != nil {
		return "", false
	}
	return roles.Role(val), true
}

func (c *Cache) Remember(ctx context.Context, userID string, role roles.Role) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key(userID), string(role), c.ttl)
}

// Forget drops the cached role, called on every role change so the
// next admin-gated request re-reads the store.
func (c *Cache) Forget(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(userID))
}
