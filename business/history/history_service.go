package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"myDecisionCoach/business/bandit"
	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100

	minOutcomeRating = 1
	maxOutcomeRating = 5
)

// DecisionRepository contract interface
type DecisionRepository interface {
	Create(ctx context.Context, decision *domain.Decision) error
	FindByID(ctx context.Context, id string) (domain.Decision, error)
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Decision, error)
	UpdateOutcome(ctx context.Context, id string, rating int) error
	Delete(ctx context.Context, id string) error
}

// Scorer is the part of the decision engine history depends on.
type Scorer interface {
	ScoreDecision(ctx context.Context, req domain.DecisionRequest) (domain.DecisionResult, error)
	ScoreRandom(ctx context.Context, options []string) (domain.RandomResult, error)
	RecordOutcome(ctx context.Context, option string, bctx domain.BanditContext, satisfaction float64) error
}

type historyService struct {
	scorer       Scorer
	decisionRepo DecisionRepository
	// scope arm statistics to the deciding user
	perUserArms bool
}

func NewHistoryService(scorer Scorer, decisionRepo DecisionRepository, perUserArms bool) *historyService {
	return &historyService{
		scorer:       scorer,
		decisionRepo: decisionRepo,
		perUserArms:  perUserArms,
	}
}

// Decide scores req for userID and stores the outcome.
func (s *historyService) Decide(ctx context.Context, userID uint, req domain.DecisionRequest) (domain.Decision, domain.DecisionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, domain.DecisionResult{}, fmt.Errorf("context error: %w", err)
	}
	if req.Title == "" {
		return domain.Decision{}, domain.DecisionResult{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	res, err := s.scorer.ScoreDecision(s.scope(ctx, userID), req)
	if err != nil {
		return domain.Decision{}, domain.DecisionResult{}, err
	}

	chosen, confidence := res.ChosenOption()
	record := domain.Decision{
		ID:              uuid.NewString(),
		UserID:          userID,
		DecisionType:    res.Type,
		Title:           req.Title,
		ChosenOption:    chosen,
		ConfidenceScore: confidence,
		Context:         decisionContext(req, res),
	}
	if res.Single != nil {
		record.EmotionLabel = string(res.Single.EmotionLabel)
	}

	if err := s.save(ctx, &record); err != nil {
		return domain.Decision{}, domain.DecisionResult{}, err
	}
	return record, res, nil
}

// DecideRandom picks uniformly and stores the pick.
func (s *historyService) DecideRandom(ctx context.Context, userID uint, title string, options []string) (domain.Decision, domain.RandomResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, domain.RandomResult{}, fmt.Errorf("context error: %w", err)
	}

	res, err := s.scorer.ScoreRandom(ctx, options)
	if err != nil {
		return domain.Decision{}, domain.RandomResult{}, err
	}
	if title == "" {
		title = "random"
	}

	record := domain.Decision{
		ID:           uuid.NewString(),
		UserID:       userID,
		DecisionType: domain.DecisionRandom,
		Title:        title,
		ChosenOption: res.ChosenOption,
		Context:      datatypes.JSONMap{"options": options},
	}
	if err := s.save(ctx, &record); err != nil {
		return domain.Decision{}, domain.RandomResult{}, err
	}
	return record, res, nil
}

func (s *historyService) GetByID(ctx context.Context, userID uint, id string) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, fmt.Errorf("context error: %w", err)
	}
	if s.decisionRepo == nil {
		return domain.Decision{}, domain.ErrDecisionNotFound
	}

	d, err := s.decisionRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Decision{}, err
	}
	if d.UserID != userID {
		return domain.Decision{}, domain.ErrDecisionNotFound
	}
	return d, nil
}

func (s *historyService) ListByUser(ctx context.Context, userID uint, limit int) ([]domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if s.decisionRepo == nil {
		return []domain.Decision{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	decisions, err := s.decisionRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		logger.Error("failed to list decisions", "user_id", userID, "error", err)
		return nil, err
	}
	return decisions, nil
}

func (s *historyService) Delete(ctx context.Context, userID uint, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.decisionRepo.Delete(ctx, id)
}

// RecordOutcome stores how the decision turned out, once per decision. For
// simple decisions the rating is also fed back to the recommender as
// satisfaction rating/5 on the option the user actually took, which must be
// one of the decision's options.
func (s *historyService) RecordOutcome(ctx context.Context, userID uint, id, chosenOption string, rating int) (domain.Decision, error) {
	if rating < minOutcomeRating || rating > maxOutcomeRating {
		return domain.Decision{}, fmt.Errorf("%w: outcome rating must be within %d..%d, got %d", domain.ErrInvalidInput, minOutcomeRating, maxOutcomeRating, rating)
	}

	d, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Decision{}, err
	}
	if d.OutcomeRating != nil {
		return domain.Decision{}, fmt.Errorf("%w: decision %s", domain.ErrOutcomeRecorded, id)
	}

	option := chosenOption
	if option == "" {
		option = d.ChosenOption
	}
	if !slices.Contains(contextOptions(d), option) {
		return domain.Decision{}, fmt.Errorf("%w: %q is not an option of decision %s", domain.ErrInvalidInput, option, id)
	}

	if err := s.decisionRepo.UpdateOutcome(ctx, id, rating); err != nil {
		return domain.Decision{}, err
	}
	d.OutcomeRating = &rating

	if d.DecisionType != domain.DecisionSimple {
		return d, nil
	}

	bctx := domain.BanditContext{
		Emotion: domain.EmotionAnalysis{Label: domain.EmotionLabel(d.EmotionLabel)},
		Hour:    contextHour(d.Context),
	}
	satisfaction := float64(rating) / maxOutcomeRating

	if err := s.scorer.RecordOutcome(s.scope(ctx, userID), option, bctx, satisfaction); err != nil {
		return domain.Decision{}, fmt.Errorf("failed to feed outcome back: %w", err)
	}

	logger.Info("decision outcome recorded",
		"decision_id", id,
		"user_id", userID,
		"option", option,
		"rating", rating,
	)
	return d, nil
}

func (s *historyService) scope(ctx context.Context, userID uint) context.Context {
	if !s.perUserArms || userID == 0 {
		return ctx
	}
	return bandit.WithTenant(ctx, "user:"+strconv.FormatUint(uint64(userID), 10))
}

func (s *historyService) save(ctx context.Context, record *domain.Decision) error {
	if s.decisionRepo == nil {
		return nil
	}
	if err := s.decisionRepo.Create(ctx, record); err != nil {
		logger.Error("failed to save decision", "decision_id", record.ID, "error", err)
		return err
	}
	return nil
}

func decisionContext(req domain.DecisionRequest, res domain.DecisionResult) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if req.Description != "" {
		out["description"] = req.Description
	}

	options := make([]string, len(req.Options))
	for i, o := range req.Options {
		options[i] = o.Text
	}
	out["options"] = options

	switch {
	case res.Single != nil:
		hour := 12
		if req.Context.Hour != nil {
			hour = *req.Context.Hour
		}
		out["hour"] = hour
		out["preferences"] = map[string]any{
			"prefer_speed":     req.Context.Preferences.PreferSpeed,
			"prefer_data":      req.Context.Preferences.PreferData,
			"prefer_intuition": req.Context.Preferences.PreferIntuition,
		}
		out["emotion_confidence"] = res.Single.Emotion.Confidence
	case res.Multi != nil:
		criteria := make([]string, len(req.Criteria))
		for i, c := range req.Criteria {
			criteria[i] = c.Name
		}
		out["criteria"] = criteria
		out["weights"] = res.Multi.Weights
		out["consistency_ratio"] = res.Multi.ConsistencyRatio
	}
	return out
}

// contextHour reads the stored hour; JSON round trips turn it into a number type.
func contextHour(ctx datatypes.JSONMap) int {
	switch v := ctx["hour"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 12
}

// contextOptions lists the option texts stored with d. Records without a
// stored list only know their chosen option.
func contextOptions(d domain.Decision) []string {
	switch v := d.Context["options"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, o := range v {
			if s, ok := o.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	if d.ChosenOption == "" {
		return nil
	}
	return []string{d.ChosenOption}
}

// IsNotFound reports whether err means the decision does not exist for the caller.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrDecisionNotFound)
}
