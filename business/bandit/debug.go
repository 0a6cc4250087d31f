package bandit

import (
	"context"
	"fmt"

	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"
)

// Explain returns the per-option score breakdown, in input order, without
// updating any arm. Each call draws fresh samples.
func (s *BanditService) Explain(
	ctx context.Context,
	options []domain.Option,
	bctx domain.BanditContext,
) ([]domain.OptionScore, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := s.validate(options, bctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// trace logging
	tid := TraceIDFromContext(ctx)
	logger.Debug("bandit_explain",
		"trace_id", tid,
		"option_count", len(options),
		"emotion", bctx.Emotion.Label,
		"hour", bctx.Hour,
	)

	return s.scoreOptions(ctx, options, bctx)
}
