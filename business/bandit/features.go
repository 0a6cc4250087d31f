package bandit

import (
	"context"

	"myDecisionCoach/domain"
)

const (
	bucketAM = "am"
	bucketPM = "pm"
)

func timeBucket(hour int) string {
	if hour > 12 {
		return bucketPM
	}
	return bucketAM
}

// ArmKey identifies one option under one emotion and half-day.
func ArmKey(option string, emotion domain.EmotionLabel, hour int) string {
	return option + "_" + string(emotion) + "_" + timeBucket(hour)
}

// storageKey prefixes the arm key with the tenant carried by ctx, if any.
func storageKey(ctx context.Context, armKey string) string {
	if tenant := TenantFromContext(ctx); tenant != "" {
		return tenant + "|" + armKey
	}
	return armKey
}

var emotionMultipliers = map[domain.EmotionLabel]float64{
	domain.EmotionAnxiety:    0.9,
	domain.EmotionConfidence: 1.1,
	domain.EmotionFear:       0.8,
	domain.EmotionExcitement: 1.2,
	domain.EmotionNeutral:    1.0,
}

// contextMultiplier scales a sampled reward by emotion and then by time of day.
func contextMultiplier(emotion domain.EmotionLabel, hour int) float64 {
	m, ok := emotionMultipliers[emotion]
	if !ok {
		m = 1.0
	}

	switch {
	case hour < 12:
		m *= 1.05
	case hour > 20:
		m *= 0.95
	}
	return m
}

func preferenceBonus(rating int, bctx domain.BanditContext) float64 {
	bonus := 0.0
	prefs := bctx.Preferences

	if prefs.PreferSpeed && rating >= 4 {
		bonus += 0.1
	}
	if prefs.PreferData && bctx.Emotion.Confidence > 0.7 {
		bonus += 0.1
	}
	if prefs.PreferIntuition && bctx.Emotion.Label == domain.EmotionConfidence {
		bonus += 0.15
	}
	return bonus
}

func clampConfidence(adjustedReward float64) float64 {
	return max(minConfidencePercent, min(maxConfidencePercent, adjustedReward*100))
}
