package postgres

import (
	"context"
	"errors"
	"fmt"

	"myDecisionCoach/domain"

	"gorm.io/gorm"
)

type DecisionRepository struct {
	DB *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) *DecisionRepository {
	return &DecisionRepository{
		DB: db,
	}
}

func (r *DecisionRepository) Create(ctx context.Context, decision *domain.Decision) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(decision).Error; err != nil {
		return fmt.Errorf("failed to create decision: %w", err)
	}

	return nil
}

func (r *DecisionRepository) FindByID(ctx context.Context, id string) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, fmt.Errorf("context error: %w", err)
	}

	var decision domain.Decision

	err := r.DB.WithContext(ctx).First(&decision, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Decision{}, domain.ErrDecisionNotFound
		}
		return domain.Decision{}, fmt.Errorf("failed to find decision: %w", err)
	}

	return decision, nil
}

// FindByUser returns the newest decisions first.
func (r *DecisionRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var decisions []domain.Decision
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&decisions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find decisions: %w", err)
	}

	return decisions, nil
}

func (r *DecisionRepository) UpdateOutcome(ctx context.Context, id string, rating int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Model(&domain.Decision{}).
		Where("id = ?", id).
		Update("outcome_rating", rating)
	if res.Error != nil {
		return fmt.Errorf("failed to update decision outcome: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDecisionNotFound
	}

	return nil
}

func (r *DecisionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).Delete(&domain.Decision{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete decision: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDecisionNotFound
	}

	return nil
}
