package bandit

import (
	"fmt"
	"math"

	"myDecisionCoach/domain"
)

// SuccessForSatisfaction turns a satisfaction value in [0, 1] into a success flag.
func (cfg Config) SuccessForSatisfaction(satisfaction float64) (bool, error) {
	if math.IsNaN(satisfaction) || satisfaction < 0 || satisfaction > 1 {
		return false, fmt.Errorf("%w: satisfaction must be within [0, 1], got %v", domain.ErrInvalidInput, satisfaction)
	}
	return satisfaction > cfg.SuccessThreshold, nil
}
