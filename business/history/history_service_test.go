package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"myDecisionCoach/business/bandit"
	"myDecisionCoach/domain"

	"gorm.io/datatypes"
)

type fakeRepo struct {
	rows      map[string]domain.Decision
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]domain.Decision)}
}

func (r *fakeRepo) Create(ctx context.Context, d *domain.Decision) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[d.ID] = *d
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (domain.Decision, error) {
	d, ok := r.rows[id]
	if !ok {
		return domain.Decision{}, domain.ErrDecisionNotFound
	}
	return d, nil
}

func (r *fakeRepo) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Decision, error) {
	out := []domain.Decision{}
	for _, d := range r.rows {
		if d.UserID == userID && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateOutcome(ctx context.Context, id string, rating int) error {
	d, ok := r.rows[id]
	if !ok {
		return domain.ErrDecisionNotFound
	}
	d.OutcomeRating = &rating
	r.rows[id] = d
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

type outcomeCall struct {
	tenant       string
	option       string
	bctx         domain.BanditContext
	satisfaction float64
}

type fakeScorer struct {
	result   domain.DecisionResult
	outcomes []outcomeCall
	tenant   string
}

func (f *fakeScorer) ScoreDecision(ctx context.Context, req domain.DecisionRequest) (domain.DecisionResult, error) {
	f.tenant = bandit.TenantFromContext(ctx)
	return f.result, nil
}

func (f *fakeScorer) ScoreRandom(ctx context.Context, options []string) (domain.RandomResult, error) {
	if len(options) < 2 {
		return domain.RandomResult{}, domain.ErrInvalidInput
	}
	return domain.RandomResult{ChosenOption: options[1], Index: 1}, nil
}

func (f *fakeScorer) RecordOutcome(ctx context.Context, option string, bctx domain.BanditContext, satisfaction float64) error {
	f.outcomes = append(f.outcomes, outcomeCall{
		tenant:       bandit.TenantFromContext(ctx),
		option:       option,
		bctx:         bctx,
		satisfaction: satisfaction,
	})
	return nil
}

func simpleResult() domain.DecisionResult {
	return domain.DecisionResult{
		Type: domain.DecisionSimple,
		Single: &domain.SingleCriterionResult{
			ChosenOption:      "A",
			ConfidencePercent: 81,
			EmotionLabel:      domain.EmotionConfidence,
			Emotion:           domain.EmotionAnalysis{Label: domain.EmotionConfidence, Confidence: 0.6},
		},
	}
}

func TestDecidePersistsSimpleDecision(t *testing.T) {
	repo := newFakeRepo()
	svc := NewHistoryService(&fakeScorer{result: simpleResult()}, repo, false)

	hour := 18
	d, _, err := svc.Decide(context.Background(), 7, domain.DecisionRequest{
		Title:   "Я уверен",
		Options: []domain.Option{{Text: "A", Rating: 5}, {Text: "B", Rating: 2}},
		Context: domain.ScoringContext{Hour: &hour},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored, ok := repo.rows[d.ID]
	if !ok {
		t.Fatalf("expected decision %s stored", d.ID)
	}
	if stored.UserID != 7 || stored.ChosenOption != "A" || stored.ConfidenceScore != 81 {
		t.Fatalf("unexpected stored decision %+v", stored)
	}
	if stored.DecisionType != domain.DecisionSimple || stored.EmotionLabel != "confidence" {
		t.Fatalf("unexpected type or emotion %+v", stored)
	}
	if stored.Context["hour"] != 18 {
		t.Fatalf("expected hour stored in context, got %v", stored.Context["hour"])
	}
}

func TestDecidePersistsComplexDecision(t *testing.T) {
	repo := newFakeRepo()
	scorer := &fakeScorer{result: domain.DecisionResult{
		Type: domain.DecisionComplex,
		Multi: &domain.MultiCriteriaResult{
			RankedOptions: []domain.RankedOption{{Name: "x", Score: 0.75, Rank: 1}, {Name: "y", Score: 0.25, Rank: 2}},
			Weights:       []float64{1},
		},
	}}
	svc := NewHistoryService(scorer, repo, false)

	d, _, err := svc.Decide(context.Background(), 3, domain.DecisionRequest{
		Title:    "pick",
		Options:  []domain.Option{{Text: "x"}, {Text: "y"}},
		Criteria: []domain.Criterion{{Name: "c", Weight: 3}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.ChosenOption != "x" || d.ConfidenceScore != 75 || d.DecisionType != domain.DecisionComplex {
		t.Fatalf("unexpected decision %+v", d)
	}
	if d.EmotionLabel != "" {
		t.Fatalf("complex decisions carry no emotion, got %q", d.EmotionLabel)
	}
}

func TestDecideRequiresTitle(t *testing.T) {
	svc := NewHistoryService(&fakeScorer{result: simpleResult()}, newFakeRepo(), false)

	if _, _, err := svc.Decide(context.Background(), 1, domain.DecisionRequest{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDecideScopesArmsPerUser(t *testing.T) {
	scorer := &fakeScorer{result: simpleResult()}
	svc := NewHistoryService(scorer, newFakeRepo(), true)

	if _, _, err := svc.Decide(context.Background(), 42, domain.DecisionRequest{Title: "t"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if scorer.tenant != "user:42" {
		t.Fatalf("expected tenant user:42, got %q", scorer.tenant)
	}
}

func TestDecideRandomPersists(t *testing.T) {
	repo := newFakeRepo()
	svc := NewHistoryService(&fakeScorer{}, repo, false)

	d, res, err := svc.DecideRandom(context.Background(), 5, "", []string{"left", "right"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.ChosenOption != "right" || d.DecisionType != domain.DecisionRandom || d.Title != "random" {
		t.Fatalf("unexpected random decision %+v %+v", d, res)
	}
	if _, ok := repo.rows[d.ID]; !ok {
		t.Fatalf("expected random decision stored")
	}
}

func TestGetByIDHidesOtherUsersDecisions(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["d1"] = domain.Decision{ID: "d1", UserID: 1}
	svc := NewHistoryService(&fakeScorer{}, repo, false)

	if _, err := svc.GetByID(context.Background(), 2, "d1"); !IsNotFound(err) {
		t.Fatalf("expected not found for another user, got %v", err)
	}
	if err := svc.Delete(context.Background(), 2, "d1"); !IsNotFound(err) {
		t.Fatalf("expected delete to be refused, got %v", err)
	}
	if _, ok := repo.rows["d1"]; !ok {
		t.Fatalf("decision must survive a foreign delete")
	}

	if err := svc.Delete(context.Background(), 1, "d1"); err != nil {
		t.Fatalf("expected owner delete to succeed, got %v", err)
	}
	if _, ok := repo.rows["d1"]; ok {
		t.Fatalf("expected decision removed")
	}
}

func TestListByUserAppliesDefaultLimit(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		repo.rows[id] = domain.Decision{ID: id, UserID: 9}
	}
	svc := NewHistoryService(&fakeScorer{}, repo, false)

	got, err := svc.ListByUser(context.Background(), 9, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 decisions, got %d", len(got))
	}
}

func TestRecordOutcomeFeedsSimpleDecisionsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["d1"] = domain.Decision{
		ID:           "d1",
		UserID:       4,
		DecisionType: domain.DecisionSimple,
		ChosenOption: "A",
		EmotionLabel: "fear",
		Context:      datatypes.JSONMap{"hour": float64(15), "options": []any{"A", "B"}},
	}
	scorer := &fakeScorer{}
	svc := NewHistoryService(scorer, repo, true)

	d, err := svc.RecordOutcome(context.Background(), 4, "d1", "B", 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.OutcomeRating == nil || *d.OutcomeRating != 4 {
		t.Fatalf("expected outcome 4, got %+v", d.OutcomeRating)
	}
	if *repo.rows["d1"].OutcomeRating != 4 {
		t.Fatalf("expected outcome persisted")
	}

	if len(scorer.outcomes) != 1 {
		t.Fatalf("expected one feedback call, got %d", len(scorer.outcomes))
	}
	call := scorer.outcomes[0]
	if call.option != "B" || call.satisfaction != 0.8 || call.bctx.Hour != 15 || call.bctx.Emotion.Label != domain.EmotionFear {
		t.Fatalf("unexpected feedback %+v", call)
	}
	if call.tenant != "user:4" {
		t.Fatalf("expected feedback scoped to user, got %q", call.tenant)
	}
}

func TestRecordOutcomeSkipsFeedbackForComplexDecisions(t *testing.T) {
	repo := newFakeRepo()
	repo.rows["d2"] = domain.Decision{ID: "d2", UserID: 4, DecisionType: domain.DecisionComplex, ChosenOption: "x"}
	scorer := &fakeScorer{}
	svc := NewHistoryService(scorer, repo, false)

	if _, err := svc.RecordOutcome(context.Background(), 4, "d2", "", 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(scorer.outcomes) != 0 {
		t.Fatalf("expected no feedback for complex decision, got %+v", scorer.outcomes)
	}
}

func TestRecordOutcomeValidatesRating(t *testing.T) {
	svc := NewHistoryService(&fakeScorer{}, newFakeRepo(), false)

	for _, r := range []int{0, 6} {
		if _, err := svc.RecordOutcome(context.Background(), 1, "d", "", r); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", r, err)
		}
	}
}

func TestContextHourAcceptsStoredNumberTypes(t *testing.T) {
	cases := []struct {
		name string
		ctx  datatypes.JSONMap
		want int
	}{
		{"int", datatypes.JSONMap{"hour": 9}, 9},
		{"float", datatypes.JSONMap{"hour": float64(18)}, 18},
		{"json number", datatypes.JSONMap{"hour": json.Number("21")}, 21},
		{"missing", datatypes.JSONMap{}, 12},
		{"garbage", datatypes.JSONMap{"hour": "noon"}, 12},
	}

	for _, tc := range cases {
		if got := contextHour(tc.ctx); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRecordOutcomeIsAcceptedOnce(t *testing.T) {
	repo := newFakeRepo()
	scorer := &fakeScorer{result: simpleResult()}
	svc := NewHistoryService(scorer, repo, false)

	req := domain.DecisionRequest{Title: "t", Options: []domain.Option{{Text: "A"}, {Text: "B"}}}
	d, _, err := svc.Decide(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.RecordOutcome(context.Background(), 7, d.ID, "", 5); err != nil {
		t.Fatalf("expected first outcome to be stored, got %v", err)
	}
	if _, err := svc.RecordOutcome(context.Background(), 7, d.ID, "", 5); !errors.Is(err, domain.ErrOutcomeRecorded) {
		t.Fatalf("expected ErrOutcomeRecorded on second outcome, got %v", err)
	}

	if len(scorer.outcomes) != 1 || scorer.outcomes[0].option != "A" || scorer.outcomes[0].satisfaction != 1 {
		t.Fatalf("expected a single feedback for A, got %+v", scorer.outcomes)
	}
}

func TestRecordOutcomeRejectsUnknownOption(t *testing.T) {
	repo := newFakeRepo()
	scorer := &fakeScorer{result: simpleResult()}
	svc := NewHistoryService(scorer, repo, false)

	req := domain.DecisionRequest{Title: "t", Options: []domain.Option{{Text: "A"}, {Text: "B"}}}
	d, _, err := svc.Decide(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.RecordOutcome(context.Background(), 7, d.ID, "Z", 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an unknown option, got %v", err)
	}
	if len(scorer.outcomes) != 0 {
		t.Fatalf("expected no feedback, got %+v", scorer.outcomes)
	}
	if repo.rows[d.ID].OutcomeRating != nil {
		t.Fatalf("expected outcome not stored")
	}

	// a rejected option does not use up the decision's outcome
	if _, err := svc.RecordOutcome(context.Background(), 7, d.ID, "B", 3); err != nil {
		t.Fatalf("expected outcome for B to be stored, got %v", err)
	}
}

func TestContextOptionsFallsBackToChosenOption(t *testing.T) {
	d := domain.Decision{ChosenOption: "A", Context: datatypes.JSONMap{}}
	if got := contextOptions(d); len(got) != 1 || got[0] != "A" {
		t.Fatalf("expected [A], got %v", got)
	}
}
