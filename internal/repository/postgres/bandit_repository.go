package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myDecisionCoach/business/bandit"
	"myDecisionCoach/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArmRepository is a bandit.ArmStore backed by the arm_statistics table.
type ArmRepository struct {
	DB *gorm.DB
}

func NewArmRepository(db *gorm.DB) *ArmRepository {
	return &ArmRepository{DB: db}
}

func (r *ArmRepository) Get(ctx context.Context, key string) (domain.ArmStatistics, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("context error: %w", err)
	}

	var row domain.ArmStatistics
	err := r.DB.WithContext(ctx).First(&row, "arm_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bandit.PriorStatistics(key), nil
	}
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to query arm_statistics: %w", err)
	}

	return row, nil
}

// Record inserts the seeded row or increments the existing one in a single
// upsert, then reads the result back inside the same transaction.
func (r *ArmRepository) Record(ctx context.Context, key string, success bool) (domain.ArmStatistics, error) {
	if err := ctx.Err(); err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("context error: %w", err)
	}

	inc := 0
	if success {
		inc = 1
	}
	seed := bandit.PriorStatistics(key)
	seed.Attempts++
	seed.Successes += inc
	now := time.Now()
	seed.UpdatedAt = now

	var out domain.ArmStatistics
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "arm_key"}},
				DoUpdates: clause.Assignments(map[string]any{
					"attempts":   gorm.Expr("arm_statistics.attempts + 1"),
					"successes":  gorm.Expr("arm_statistics.successes + ?", inc),
					"updated_at": now,
				}),
			},
		).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to upsert arm_statistics: %w", err)
		}

		if err := tx.First(&out, "arm_key = ?", key).Error; err != nil {
			return fmt.Errorf("failed to reload arm_statistics: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.ArmStatistics{}, err
	}

	return out, nil
}

func (r *ArmRepository) List(ctx context.Context) ([]domain.ArmStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ArmStatistics
	if err := r.DB.WithContext(ctx).Order("arm_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list arm_statistics: %w", err)
	}

	return rows, nil
}
