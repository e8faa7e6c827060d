package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_URL is unset; the lookup cache is
// optional.
func ConnectRedis(ctx context.Context, env Env) (*redis.Client, error) {
	if env.RedisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(env.RedisURL)
	if err != nil {
		return nil, &ConfigError{Field: "REDIS_URL", Message: err.Error()}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
