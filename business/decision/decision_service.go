package decision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"myDecisionCoach/business/ahp"
	"myDecisionCoach/business/bandit"
	"myDecisionCoach/business/topsis"
	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"
)

const (
	minOptions  = 2
	maxOptions  = 8
	minCriteria = 1
	maxCriteria = 6
	minScore    = 1.0
	maxScore    = 5.0

	defaultHour = 12
)

// EmotionAnalyzer contract interface
type EmotionAnalyzer interface {
	Analyze(text string) domain.EmotionAnalysis
}

// Recommender contract interface
type Recommender interface {
	Recommend(ctx context.Context, options []domain.Option, bctx domain.BanditContext) (domain.Recommendation, error)
	Explain(ctx context.Context, options []domain.Option, bctx domain.BanditContext) ([]domain.OptionScore, error)
	RecordOutcome(ctx context.Context, option string, bctx domain.BanditContext, satisfaction float64) (domain.ArmStatistics, error)
}

type decisionService struct {
	analyzer    EmotionAnalyzer
	recommender Recommender
	rng         bandit.RandomSource
}

func NewDecisionService(analyzer EmotionAnalyzer, recommender Recommender, rng bandit.RandomSource) *decisionService {
	if rng == nil {
		rng = bandit.NewRandSource(time.Now().UnixNano())
	}
	return &decisionService{
		analyzer:    analyzer,
		recommender: recommender,
		rng:         rng,
	}
}

// ScoreDecision routes a request with criteria through weighting and ranking,
// and anything else through emotion analysis and the recommender.
func (s *decisionService) ScoreDecision(ctx context.Context, req domain.DecisionRequest) (domain.DecisionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DecisionResult{}, fmt.Errorf("context error: %w", err)
	}

	if req.IsMultiCriteria() {
		names := make([]string, len(req.Options))
		for i, opt := range req.Options {
			names[i] = opt.Text
		}
		matrix := req.EvaluationMatrix
		if matrix == nil {
			matrix = matrixFromOptions(req.Options)
		}

		res, err := s.ScoreMultiCriteria(ctx, req.Criteria, names, matrix)
		if err != nil {
			return domain.DecisionResult{}, err
		}
		return domain.DecisionResult{Type: domain.DecisionComplex, Multi: &res}, nil
	}

	res, err := s.ScoreSingleCriterion(ctx, emotionText(req), req.Options, req.Context)
	if err != nil {
		return domain.DecisionResult{}, err
	}
	return domain.DecisionResult{Type: domain.DecisionSimple, Single: &res}, nil
}

func (s *decisionService) ScoreSingleCriterion(
	ctx context.Context,
	title string,
	options []domain.Option,
	sctx domain.ScoringContext,
) (domain.SingleCriterionResult, error) {

	start := time.Now()
	res, err := s.scoreSingle(ctx, title, options, sctx)
	observe(domain.DecisionSimple, start, err)
	return res, err
}

func (s *decisionService) scoreSingle(
	ctx context.Context,
	title string,
	options []domain.Option,
	sctx domain.ScoringContext,
) (domain.SingleCriterionResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.SingleCriterionResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validateOptions(options); err != nil {
		return domain.SingleCriterionResult{}, err
	}

	emotion := s.analyzer.Analyze(title)
	bctx := BanditContext(emotion, sctx)

	rec, err := s.recommender.Recommend(ctx, options, bctx)
	if err != nil {
		return domain.SingleCriterionResult{}, err
	}

	logger.Debug("decision_single_scored",
		"trace_id", bandit.TraceIDFromContext(ctx),
		"emotion", emotion.Label,
		"chosen", rec.Option,
		"confidence", rec.ConfidencePercent,
	)

	return domain.SingleCriterionResult{
		ChosenOption:      rec.Option,
		ConfidencePercent: rec.ConfidencePercent,
		EmotionLabel:      emotion.Label,
		Emotion:           emotion,
		Recommendation:    rec,
		Rationale:         singleRationale(rec, emotion.Label),
	}, nil
}

func (s *decisionService) ScoreMultiCriteria(
	ctx context.Context,
	criteria []domain.Criterion,
	options []string,
	matrix [][]float64,
) (domain.MultiCriteriaResult, error) {

	start := time.Now()
	res, err := s.scoreMulti(ctx, criteria, options, matrix)
	observe(domain.DecisionComplex, start, err)
	return res, err
}

func (s *decisionService) scoreMulti(
	ctx context.Context,
	criteria []domain.Criterion,
	options []string,
	matrix [][]float64,
) (domain.MultiCriteriaResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.MultiCriteriaResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validateMulti(criteria, options, matrix); err != nil {
		return domain.MultiCriteriaResult{}, err
	}

	raw := make([]float64, len(criteria))
	directions := make([]domain.Direction, len(criteria))
	for i, c := range criteria {
		raw[i] = c.Weight
		directions[i] = c.Direction
	}

	wr, err := ahp.DeriveWeights(raw)
	if err != nil {
		return domain.MultiCriteriaResult{}, err
	}
	if !wr.Consistent {
		AHPInconsistentWeightsTotal.Inc()
	}

	ranked, err := topsis.Rank(options, matrix, wr.Weights, directions)
	if err != nil {
		return domain.MultiCriteriaResult{}, err
	}

	logger.Debug("decision_multi_scored",
		"trace_id", bandit.TraceIDFromContext(ctx),
		"criteria_count", len(criteria),
		"option_count", len(options),
		"consistency_ratio", wr.ConsistencyRatio,
		"top", ranked[0].Name,
	)

	return domain.MultiCriteriaResult{
		RankedOptions:    ranked,
		Weights:          wr.Weights,
		ConsistencyRatio: wr.ConsistencyRatio,
		Consistent:       wr.Consistent,
		Rationale:        multiRationale(criteria, ranked, wr),
	}, nil
}

// ScoreRandom picks one option uniformly.
func (s *decisionService) ScoreRandom(ctx context.Context, options []string) (domain.RandomResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return domain.RandomResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validateNames(options); err != nil {
		observe(domain.DecisionRandom, start, err)
		return domain.RandomResult{}, err
	}

	i := bandit.PickIndex(s.rng, len(options))
	observe(domain.DecisionRandom, start, nil)

	return domain.RandomResult{ChosenOption: options[i], Index: i}, nil
}

// Explain returns the recommender's per-option breakdown without learning.
func (s *decisionService) Explain(
	ctx context.Context,
	title string,
	options []domain.Option,
	sctx domain.ScoringContext,
) ([]domain.OptionScore, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := validateOptions(options); err != nil {
		return nil, err
	}

	bctx := BanditContext(s.analyzer.Analyze(title), sctx)
	return s.recommender.Explain(ctx, options, bctx)
}

// RecordOutcome forwards real feedback for a single-criterion decision.
func (s *decisionService) RecordOutcome(
	ctx context.Context,
	option string,
	bctx domain.BanditContext,
	satisfaction float64,
) error {

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if _, err := s.recommender.RecordOutcome(ctx, option, bctx, satisfaction); err != nil {
		return err
	}
	return nil
}

// BanditContext fills host defaults into the recommender context.
func BanditContext(emotion domain.EmotionAnalysis, sctx domain.ScoringContext) domain.BanditContext {
	hour := defaultHour
	if sctx.Hour != nil {
		hour = *sctx.Hour
	}
	return domain.BanditContext{
		Emotion:     emotion,
		Hour:        hour,
		Preferences: sctx.Preferences,
	}
}

func emotionText(req domain.DecisionRequest) string {
	return strings.TrimSpace(req.Title + " " + req.Description)
}

func matrixFromOptions(options []domain.Option) [][]float64 {
	out := make([][]float64, len(options))
	for i, opt := range options {
		out[i] = opt.CriteriaScores
	}
	return out
}

func observe(kind domain.DecisionType, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DecisionRequestsTotal.WithLabelValues(string(kind), status).Inc()
	DecisionScoreLatency.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}
