package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"myDecisionCoach/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the arm statistics store and checks that the
// configured key prefix is usable before the service starts serving.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if err := CheckKeyPrefix(ctx, client, cfg.KeyPrefix); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// CheckKeyPrefix fails when <prefix>:arms already holds something other than
// the arm index set, i.e. the prefix is shared with another application.
func CheckKeyPrefix(ctx context.Context, client *redis.Client, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("redis key prefix is empty")
	}

	index := prefix + ":arms"
	kind, err := client.Type(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", index, err)
	}
	if kind != "none" && kind != "set" {
		return fmt.Errorf("redis key %s is a %s, expected the arm index set; choose another REDIS_KEY_PREFIX", index, kind)
	}
	return nil
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
