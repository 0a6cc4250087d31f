package redis

import (
	"context"
	"testing"

	"myDecisionCoach/pkg/config"

	"github.com/alicebob/miniredis/v2"
)

func testConfig(mr *miniredis.Miniredis) config.RedisConfig {
	return config.RedisConfig{
		RedisHost:    mr.Host(),
		RedisPort:    mr.Port(),
		PoolSize:     2,
		MinIdleConns: 0,
		KeyPrefix:    "decision",
	}
}

func TestNewRedisClientAcceptsFreshPrefix(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), testConfig(mr))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer CloseRedisClient(client)

	mr.SAdd("decision:arms", "A_neutral_am")
	if err := CheckKeyPrefix(context.Background(), client, "decision"); err != nil {
		t.Fatalf("expected an existing arm index to pass, got %v", err)
	}
}

func TestNewRedisClientRejectsForeignPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	if err := mr.Set("decision:arms", "not-a-set"); err != nil {
		t.Fatalf("failed to seed redis: %v", err)
	}

	if _, err := NewRedisClient(context.Background(), testConfig(mr)); err == nil {
		t.Fatalf("expected error for a prefix whose index key is a string")
	}
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	cfg := testConfig(mr)
	mr.Close()

	if _, err := NewRedisClient(context.Background(), cfg); err == nil {
		t.Fatalf("expected connection error")
	}
}
