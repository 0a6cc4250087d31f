package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"myDecisionCoach/business/bandit"
	"myDecisionCoach/domain"

	"github.com/redis/go-redis/v9"
)

const (
	fieldSuccesses = "successes"
	fieldAttempts  = "attempts"
	fieldUpdatedAt = "updated_at"
)

// ArmRepository is a bandit.ArmStore keeping one hash per arm plus a set
// indexing every arm key.
type ArmRepository struct {
	client *redis.Client
	prefix string
}

func NewArmRepository(client *redis.Client, prefix string) *ArmRepository {
	if prefix == "" {
		prefix = "decision"
	}
	return &ArmRepository{
		client: client,
		prefix: prefix,
	}
}

// key format: "{prefix}:arm:{arm_key}"
func (r *ArmRepository) armKey(key string) string {
	return fmt.Sprintf("%s:arm:%s", r.prefix, key)
}

func (r *ArmRepository) indexKey() string {
	return fmt.Sprintf("%s:arms", r.prefix)
}

func (r *ArmRepository) Get(ctx context.Context, key string) (domain.ArmStatistics, error) {
	vals, err := r.client.HGetAll(ctx, r.armKey(key)).Result()
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to get arm from Redis: %w", err)
	}
	if len(vals) == 0 {
		return bandit.PriorStatistics(key), nil
	}
	return parseArm(key, vals)
}

// Record seeds and increments inside one MULTI/EXEC so concurrent writers
// never lose an update.
func (r *ArmRepository) Record(ctx context.Context, key string, success bool) (domain.ArmStatistics, error) {
	k := r.armKey(key)
	prior := bandit.PriorStatistics(key)
	now := time.Now()

	var attempts, successes *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, k, fieldSuccesses, prior.Successes)
		pipe.HSetNX(ctx, k, fieldAttempts, prior.Attempts)
		attempts = pipe.HIncrBy(ctx, k, fieldAttempts, 1)
		inc := int64(0)
		if success {
			inc = 1
		}
		successes = pipe.HIncrBy(ctx, k, fieldSuccesses, inc)
		pipe.HSet(ctx, k, fieldUpdatedAt, now.UnixMilli())
		pipe.SAdd(ctx, r.indexKey(), key)
		return nil
	})
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to record arm in Redis: %w", err)
	}

	return domain.ArmStatistics{
		ArmKey:    key,
		Successes: int(successes.Val()),
		Attempts:  int(attempts.Val()),
		UpdatedAt: time.UnixMilli(now.UnixMilli()),
	}, nil
}

func (r *ArmRepository) List(ctx context.Context) ([]domain.ArmStatistics, error) {
	keys, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list arm keys from Redis: %w", err)
	}
	sort.Strings(keys)

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, r.armKey(key))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load arms from Redis: %w", err)
	}

	out := make([]domain.ArmStatistics, 0, len(keys))
	for i, key := range keys {
		vals := cmds[i].Val()
		if len(vals) == 0 {
			continue
		}
		st, err := parseArm(key, vals)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func parseArm(key string, vals map[string]string) (domain.ArmStatistics, error) {
	successes, err := strconv.Atoi(vals[fieldSuccesses])
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to parse successes for %s: %w", key, err)
	}
	attempts, err := strconv.Atoi(vals[fieldAttempts])
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to parse attempts for %s: %w", key, err)
	}

	st := domain.ArmStatistics{
		ArmKey:    key,
		Successes: successes,
		Attempts:  attempts,
	}
	if ms, err := strconv.ParseInt(vals[fieldUpdatedAt], 10, 64); err == nil {
		st.UpdatedAt = time.UnixMilli(ms)
	}
	return st, nil
}
