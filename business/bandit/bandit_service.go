package bandit

import (
	"context"
	"fmt"
	"sync"

	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"
)

// ---- Usecase / Service ----

type BanditService struct {
	// covers read -> sample -> update for one call
	mu sync.Mutex

	store ArmStore
	rng   RandomSource
	cfg   Config
}

func NewBanditService(store ArmStore, rng RandomSource, cfg Config) *BanditService {
	if store == nil {
		store = NewMemoryArmStore()
	}
	if rng == nil {
		rng = NewRandSource(1)
	}
	return &BanditService{
		store: store,
		rng:   rng,
		cfg:   cfg.withDefaults(),
	}
}

func (s *BanditService) Config() Config {
	return s.cfg
}

//  Recommendation / serving

// Recommend samples every option, returns the best one and records the
// assumed outcome on the winner's arm.
func (s *BanditService) Recommend(
	ctx context.Context,
	options []domain.Option,
	bctx domain.BanditContext,
) (domain.Recommendation, error) {

	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}
	if err := s.validate(options, bctx); err != nil {
		return domain.Recommendation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.scoreOptions(ctx, options, bctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].FinalScore > scores[best].FinalScore {
			best = i
		}
	}
	winner := scores[best]

	rec := domain.Recommendation{
		Option:            winner.Option,
		Score:             winner.FinalScore,
		ConfidencePercent: clampConfidence(winner.AdjustedReward),
		OriginalRating:    winner.Rating,
		ContextFactor:     winner.ContextFactor,
		ExpectedReward:    winner.SampledReward,
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("bandit_recommend",
		"trace_id", tid,
		"option_count", len(options),
		"emotion", bctx.Emotion.Label,
		"hour", bctx.Hour,
		"chosen", rec.Option,
		"score", rec.Score,
		"confidence", rec.ConfidencePercent,
	)

	BanditRecommendationsTotal.
		WithLabelValues(string(bctx.Emotion.Label), timeBucket(bctx.Hour)).
		Inc()

	if s.cfg.AssumeSatisfaction {
		success := s.cfg.AssumedSatisfaction > s.cfg.SuccessThreshold
		if _, err := s.store.Record(ctx, storageKey(ctx, winner.ArmKey), success); err != nil {
			return domain.Recommendation{}, fmt.Errorf("failed to update arm statistics: %w", err)
		}
		BanditFeedbackEventsTotal.WithLabelValues("assumed", resultLabel(success)).Inc()
	}

	return rec, nil
}

//  Feedback / learning

// RecordOutcome applies real feedback for option served under bctx.
func (s *BanditService) RecordOutcome(
	ctx context.Context,
	option string,
	bctx domain.BanditContext,
	satisfaction float64,
) (domain.ArmStatistics, error) {

	if err := ctx.Err(); err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("context error: %w", err)
	}
	if option == "" {
		return domain.ArmStatistics{}, fmt.Errorf("%w: option is required", domain.ErrInvalidInput)
	}
	if err := validateHour(bctx.Hour); err != nil {
		return domain.ArmStatistics{}, err
	}
	success, err := s.cfg.SuccessForSatisfaction(satisfaction)
	if err != nil {
		return domain.ArmStatistics{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ArmKey(option, bctx.Emotion.Label, bctx.Hour)
	st, err := s.store.Record(ctx, storageKey(ctx, key), success)
	if err != nil {
		return domain.ArmStatistics{}, fmt.Errorf("failed to record outcome: %w", err)
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("bandit_feedback",
		"trace_id", tid,
		"arm_key", key,
		"satisfaction", satisfaction,
		"success", success,
		"attempts", st.Attempts,
		"successes", st.Successes,
	)

	BanditFeedbackEventsTotal.WithLabelValues("outcome", resultLabel(success)).Inc()

	return st, nil
}

// ListArms returns every stored arm, tenant prefixes included.
func (s *BanditService) ListArms(ctx context.Context) ([]domain.ArmStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	arms, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list arm statistics: %w", err)
	}
	return arms, nil
}

// ---- Scoring ----

// scoreOptions samples a reward per option and combines it with context and rating.
// Callers hold s.mu.
func (s *BanditService) scoreOptions(
	ctx context.Context,
	options []domain.Option,
	bctx domain.BanditContext,
) ([]domain.OptionScore, error) {

	multiplier := contextMultiplier(bctx.Emotion.Label, bctx.Hour)
	out := make([]domain.OptionScore, 0, len(options))

	for _, opt := range options {
		rating := opt.Rating
		if rating == 0 {
			rating = s.cfg.DefaultRating
		}

		key := ArmKey(opt.Text, bctx.Emotion.Label, bctx.Hour)
		st, err := s.store.Get(ctx, storageKey(ctx, key))
		if err != nil {
			return nil, fmt.Errorf("failed to load arm statistics: %w", err)
		}

		alpha := float64(st.Successes + 1)
		beta := float64(st.Attempts - st.Successes + 1)
		if beta < 1 {
			beta = 1
		}
		sampled := betaSample(s.rng, alpha, beta)

		adjusted := sampled * multiplier
		bonus := preferenceBonus(rating, bctx)

		out = append(out, domain.OptionScore{
			Option:          opt.Text,
			ArmKey:          key,
			Successes:       st.Successes,
			Attempts:        st.Attempts,
			SampledReward:   sampled,
			ContextFactor:   multiplier,
			AdjustedReward:  adjusted,
			PreferenceBonus: bonus,
			Rating:          rating,
			FinalScore:      (adjusted + bonus) * float64(rating),
		})
	}

	return out, nil
}

func (s *BanditService) validate(options []domain.Option, bctx domain.BanditContext) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: at least one option is required", domain.ErrInvalidInput)
	}
	for i, opt := range options {
		if opt.Text == "" {
			return fmt.Errorf("%w: option %d has empty text", domain.ErrInvalidInput, i)
		}
		if opt.Rating != 0 && (opt.Rating < minRating || opt.Rating > maxRating) {
			return fmt.Errorf("%w: option %d rating must be within %d..%d, got %d", domain.ErrInvalidInput, i, minRating, maxRating, opt.Rating)
		}
	}
	return validateHour(bctx.Hour)
}

func validateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour must be within 0..23, got %d", domain.ErrInvalidInput, hour)
	}
	return nil
}
