package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"myDecisionCoach/domain"
	"myDecisionCoach/internal/middleware"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	DecisionHandler struct {
		validate        *validator.Validate
		decisionService DecisionService
		historyService  HistoryService
		timeout         time.Duration
	}

	DecisionService interface {
		ScoreDecision(ctx context.Context, req domain.DecisionRequest) (domain.DecisionResult, error)
		ScoreRandom(ctx context.Context, options []string) (domain.RandomResult, error)
		Explain(ctx context.Context, title string, options []domain.Option, sctx domain.ScoringContext) ([]domain.OptionScore, error)
	}

	HistoryService interface {
		Decide(ctx context.Context, userID uint, req domain.DecisionRequest) (domain.Decision, domain.DecisionResult, error)
		DecideRandom(ctx context.Context, userID uint, title string, options []string) (domain.Decision, domain.RandomResult, error)
		GetByID(ctx context.Context, userID uint, id string) (domain.Decision, error)
		ListByUser(ctx context.Context, userID uint, limit int) ([]domain.Decision, error)
		Delete(ctx context.Context, userID uint, id string) error
		RecordOutcome(ctx context.Context, userID uint, id, chosenOption string, rating int) (domain.Decision, error)
	}

	OptionRequest struct {
		Text           string    `json:"text" validate:"required,max=200"`
		Rating         int       `json:"rating" validate:"gte=0,lte=5"`
		CriteriaScores []float64 `json:"criteria_scores" validate:"omitempty,dive,gte=1,lte=5"`
	}

	CriterionRequest struct {
		Name      string  `json:"name" validate:"required,max=100"`
		Weight    float64 `json:"weight" validate:"gte=1,lte=5"`
		Direction string  `json:"direction" validate:"omitempty,oneof=benefit cost"`
	}

	ContextRequest struct {
		Hour        *int                   `json:"hour" validate:"omitempty,gte=0,lte=23"`
		Preferences domain.PreferenceFlags `json:"preferences"`
	}

	ScoreDecisionRequest struct {
		Title            string             `json:"title" validate:"required,max=500"`
		Description      string             `json:"description" validate:"max=2000"`
		Options          []OptionRequest    `json:"options" validate:"required,min=2,max=8,dive"`
		Criteria         []CriterionRequest `json:"criteria" validate:"omitempty,max=6,dive"`
		EvaluationMatrix [][]float64        `json:"evaluation_matrix"`
		Context          ContextRequest     `json:"context"`
	}

	RandomDecisionRequest struct {
		Title   string   `json:"title" validate:"max=500"`
		Options []string `json:"options" validate:"required,min=2,max=8,dive,required,max=200"`
	}

	OutcomeRequest struct {
		ChosenOption  string `json:"chosen_option" validate:"max=200"`
		OutcomeRating int    `json:"outcome_rating" validate:"required,gte=1,lte=5"`
	}

	DecisionResponse struct {
		Decision *domain.Decision      `json:"decision,omitempty"`
		Result   domain.DecisionResult `json:"result"`
	}

	RandomDecisionResponse struct {
		Decision *domain.Decision    `json:"decision,omitempty"`
		Result   domain.RandomResult `json:"result"`
	}
)

func NewDecisionHandler(decisionService DecisionService, historyService HistoryService, timeout time.Duration) *DecisionHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DecisionHandler{
		validate:        validator.New(),
		decisionService: decisionService,
		historyService:  historyService,
		timeout:         timeout,
	}
}

// POST /api/v1/decisions/score
func (h *DecisionHandler) Score(c echo.Context) error {
	var req ScoreDecisionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.decisionService.ScoreDecision(ctx, req.toDomain())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(DecisionResponse{Result: res}))
}

// POST /api/v1/decisions
func (h *DecisionHandler) Create(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ScoreDecisionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record, res, err := h.historyService.Decide(ctx, userID, req.toDomain())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(DecisionResponse{Decision: &record, Result: res}))
}

// GET /api/v1/decisions?limit=10
func (h *DecisionHandler) List(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	decisions, err := h.historyService.ListByUser(ctx, userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(decisions))
}

// GET /api/v1/decisions/:id
func (h *DecisionHandler) GetByID(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	decision, err := h.historyService.GetByID(ctx, userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(decision))
}

// DELETE /api/v1/decisions/:id
func (h *DecisionHandler) Delete(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.historyService.Delete(ctx, userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("decision deleted"))
}

// PATCH /api/v1/decisions/:id/outcome
func (h *DecisionHandler) RecordOutcome(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req OutcomeRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	decision, err := h.historyService.RecordOutcome(ctx, userID, c.Param("id"), req.ChosenOption, req.OutcomeRating)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(decision))
}

// POST /api/v1/decisions/random
// Signed-in callers get the pick stored in their history.
func (h *DecisionHandler) Random(c echo.Context) error {
	var req RandomDecisionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if userID := middleware.UserIDFromContext(c); userID != 0 {
		record, res, err := h.historyService.DecideRandom(ctx, userID, req.Title, req.Options)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, fres.Response.StatusCreated(RandomDecisionResponse{Decision: &record, Result: res}))
	}

	res, err := h.decisionService.ScoreRandom(ctx, req.Options)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RandomDecisionResponse{Result: res}))
}

// POST /api/v1/decisions/explain
func (h *DecisionHandler) Explain(c echo.Context) error {
	var req ScoreDecisionRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dr := req.toDomain()
	scores, err := h.decisionService.Explain(ctx, strings.TrimSpace(dr.Title+" "+dr.Description), dr.Options, dr.Context)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(scores))
}

func (h *DecisionHandler) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return h.validate.Struct(req)
}

func (r ScoreDecisionRequest) toDomain() domain.DecisionRequest {
	out := domain.DecisionRequest{
		Title:            r.Title,
		Description:      r.Description,
		EvaluationMatrix: r.EvaluationMatrix,
		Context: domain.ScoringContext{
			Hour:        r.Context.Hour,
			Preferences: r.Context.Preferences,
		},
	}

	out.Options = make([]domain.Option, len(r.Options))
	for i, o := range r.Options {
		out.Options[i] = domain.Option{
			Text:           o.Text,
			Rating:         o.Rating,
			CriteriaScores: o.CriteriaScores,
		}
	}

	if len(r.Criteria) > 0 {
		out.Criteria = make([]domain.Criterion, len(r.Criteria))
		for i, cr := range r.Criteria {
			out.Criteria[i] = domain.Criterion{
				Name:      cr.Name,
				Weight:    cr.Weight,
				Direction: domain.Direction(cr.Direction),
			}
		}
	}

	return out
}
