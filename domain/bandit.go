package domain

import "time"

// ArmStatistics tracks one option under one emotion and half-day context.
type ArmStatistics struct {
	ArmKey    string    `gorm:"column:arm_key;primaryKey" json:"arm_key"`
	Successes int       `gorm:"column:successes;not null" json:"successes"`
	Attempts  int       `gorm:"column:attempts;not null" json:"attempts"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ArmStatistics) TableName() string {
	return "arm_statistics"
}

type PreferenceFlags struct {
	PreferSpeed     bool `json:"prefer_speed"`
	PreferData      bool `json:"prefer_data"`
	PreferIntuition bool `json:"prefer_intuition"`
}

// BanditContext is the context tuple a recommendation is served under.
type BanditContext struct {
	Emotion     EmotionAnalysis `json:"emotion"`
	Hour        int             `json:"hour"`
	Preferences PreferenceFlags `json:"preferences"`
}

type Recommendation struct {
	Option            string  `json:"option"`
	Score             float64 `json:"score"`
	ConfidencePercent float64 `json:"confidence"`
	OriginalRating    int     `json:"original_rating"`
	ContextFactor     float64 `json:"context_factor"`
	ExpectedReward    float64 `json:"expected_reward"`
}

// OptionScore is the per-option breakdown behind a recommendation.
type OptionScore struct {
	Option          string  `json:"option"`
	ArmKey          string  `json:"arm_key"`
	Successes       int     `json:"successes"`
	Attempts        int     `json:"attempts"`
	SampledReward   float64 `json:"sampled_reward"`
	ContextFactor   float64 `json:"context_factor"`
	AdjustedReward  float64 `json:"adjusted_reward"`
	PreferenceBonus float64 `json:"preference_bonus"`
	Rating          int     `json:"rating"`
	FinalScore      float64 `json:"final_score"`
}
