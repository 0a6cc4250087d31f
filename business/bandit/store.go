package bandit

import (
	"context"
	"sort"
	"sync"
	"time"

	"myDecisionCoach/domain"
)

// ArmStore persists per-arm success statistics.
// Get on an unseen key returns the Laplace prior without writing it.
// Record seeds an unseen key with the prior before applying the update.
type ArmStore interface {
	Get(ctx context.Context, key string) (domain.ArmStatistics, error)
	Record(ctx context.Context, key string, success bool) (domain.ArmStatistics, error)
	List(ctx context.Context) ([]domain.ArmStatistics, error)
}

const (
	priorSuccesses = 1
	priorAttempts  = 1
)

// PriorStatistics is the state every arm starts from.
func PriorStatistics(key string) domain.ArmStatistics {
	return domain.ArmStatistics{
		ArmKey:    key,
		Successes: priorSuccesses,
		Attempts:  priorAttempts,
	}
}

// MemoryArmStore keeps arms for the process lifetime.
type MemoryArmStore struct {
	mu   sync.RWMutex
	arms map[string]domain.ArmStatistics
}

func NewMemoryArmStore() *MemoryArmStore {
	return &MemoryArmStore{arms: make(map[string]domain.ArmStatistics)}
}

func (s *MemoryArmStore) Get(ctx context.Context, key string) (domain.ArmStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.arms[key]; ok {
		return st, nil
	}
	return PriorStatistics(key), nil
}

func (s *MemoryArmStore) Record(ctx context.Context, key string, success bool) (domain.ArmStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.arms[key]
	if !ok {
		st = PriorStatistics(key)
	}
	st.Attempts++
	if success {
		st.Successes++
	}
	st.UpdatedAt = time.Now()
	s.arms[key] = st

	return st, nil
}

func (s *MemoryArmStore) List(ctx context.Context) ([]domain.ArmStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ArmStatistics, 0, len(s.arms))
	for _, st := range s.arms {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArmKey < out[j].ArmKey })
	return out, nil
}
