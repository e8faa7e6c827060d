package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LookupCache keeps JSON snapshots of lookup lists in Redis.
type LookupCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func (c *LookupCache) key(name string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "transportes:lookup:"
	}
	return prefix + name
}

// get reports a miss as (false, nil).
func (c *LookupCache) get(ctx context.Context, name string, dst any) (bool, error) {
	data, err := c.Client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", name, err)
	}
	return true, nil
}

func (c *LookupCache) set(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", name, err)
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return c.Client.Set(ctx, c.key(name), data, ttl).Err()
}

// Invalidate drops the named snapshots.
func (c *LookupCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, c.key(n))
	}
	return c.Client.Del(ctx, keys...).Err()
}
