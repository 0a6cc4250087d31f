package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Option struct {
	Text           string    `json:"text"`
	Rating         int       `json:"rating"`
	CriteriaScores []float64 `json:"criteria_scores,omitempty"`
}

// Direction tells the ranker whether higher (benefit) or lower (cost) values are better.
type Direction string

const (
	DirectionBenefit Direction = "benefit"
	DirectionCost    Direction = "cost"
)

type Criterion struct {
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Direction Direction `json:"direction,omitempty"`
}

type WeightResult struct {
	Weights          []float64 `json:"weights"`
	ConsistencyRatio float64   `json:"consistency_ratio"`
	Consistent       bool      `json:"consistent"`
}

type RankedOption struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
	Index int     `json:"index"`
}

// ScoringContext is what the host supplies for single-criterion requests.
// A nil Hour means noon.
type ScoringContext struct {
	Hour        *int            `json:"hour,omitempty"`
	Preferences PreferenceFlags `json:"preferences"`
}

// DecisionRequest carries either shape. Criteria present selects the multi-criteria path.
type DecisionRequest struct {
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Options          []Option       `json:"options"`
	Criteria         []Criterion    `json:"criteria,omitempty"`
	EvaluationMatrix [][]float64    `json:"evaluation_matrix,omitempty"`
	Context          ScoringContext `json:"context"`
}

func (r DecisionRequest) IsMultiCriteria() bool {
	return len(r.Criteria) > 0
}

type SingleCriterionResult struct {
	ChosenOption      string          `json:"chosen_option"`
	ConfidencePercent float64         `json:"confidence"`
	EmotionLabel      EmotionLabel    `json:"emotion_label"`
	Emotion           EmotionAnalysis `json:"emotion"`
	Recommendation    Recommendation  `json:"recommendation"`
	Rationale         string          `json:"rationale"`
}

type MultiCriteriaResult struct {
	RankedOptions    []RankedOption `json:"ranked_options"`
	Weights          []float64      `json:"weights"`
	ConsistencyRatio float64        `json:"consistency_ratio"`
	Consistent       bool           `json:"consistent"`
	Rationale        string         `json:"rationale"`
}

type RandomResult struct {
	ChosenOption string `json:"chosen_option"`
	Index        int    `json:"index"`
}

type DecisionType string

const (
	DecisionSimple  DecisionType = "simple"
	DecisionComplex DecisionType = "complex"
	DecisionRandom  DecisionType = "random"
)

// DecisionResult is the façade output; exactly one of Single or Multi is set.
type DecisionResult struct {
	Type   DecisionType           `json:"type"`
	Single *SingleCriterionResult `json:"single,omitempty"`
	Multi  *MultiCriteriaResult   `json:"multi,omitempty"`
}

// ChosenOption returns the top pick regardless of path.
func (r DecisionResult) ChosenOption() (string, float64) {
	switch {
	case r.Single != nil:
		return r.Single.ChosenOption, r.Single.ConfidencePercent
	case r.Multi != nil && len(r.Multi.RankedOptions) > 0:
		top := r.Multi.RankedOptions[0]
		return top.Name, top.Score * 100
	default:
		return "", 0
	}
}

// CREATE TABLE public.decisions (
//     id               VARCHAR(36) PRIMARY KEY,
//     user_id          BIGINT NOT NULL,
//     decision_type    TEXT NOT NULL,
//     title            TEXT NOT NULL,
//     chosen_option    TEXT,
//     confidence_score NUMERIC,
//     emotion_label    TEXT,
//     context          JSONB,
//     outcome_rating   INT,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Decision struct {
	ID              string            `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	UserID          uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	DecisionType    DecisionType      `gorm:"column:decision_type;not null" json:"decision_type"`
	Title           string            `gorm:"column:title;not null" json:"title"`
	ChosenOption    string            `gorm:"column:chosen_option" json:"chosen_option"`
	ConfidenceScore float64           `gorm:"column:confidence_score" json:"confidence_score"`
	EmotionLabel    string            `gorm:"column:emotion_label" json:"emotion_label,omitempty"`
	Context         datatypes.JSONMap `gorm:"column:context" json:"context"`
	OutcomeRating   *int              `gorm:"column:outcome_rating" json:"outcome_rating,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Decision) TableName() string {
	return "decisions"
}
