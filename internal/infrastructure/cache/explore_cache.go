package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/plantify/pkg/helpers"
)

// ExploreCache keeps explore list responses in Redis under a common prefix.
type ExploreCache struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewExploreCache(rdb *redis.Client, ttl time.Duration) *ExploreCache {
	return &ExploreCache{RDB: rdb, Prefix: "explore:", TTL: ttl}
}

func (c *ExploreCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var raw json.RawMessage
	ok, err := helpers.RedisGetJSON(ctx, c.RDB, c.Prefix+key, &raw)
	return raw, ok, err
}

func (c *ExploreCache) Set(ctx context.Context, key string, value json.RawMessage) error {
	return helpers.RedisSetJSON(ctx, c.RDB, c.Prefix+key, value, c.TTL)
}

// Invalidate drops every cached explore list.
func (c *ExploreCache) Invalidate(ctx context.Context) error {
	return helpers.RedisDelPattern(ctx, c.RDB, c.Prefix+"*")
}
