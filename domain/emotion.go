package domain

type EmotionLabel string

const (
	EmotionAnxiety    EmotionLabel = "anxiety"
	EmotionConfidence EmotionLabel = "confidence"
	EmotionFear       EmotionLabel = "fear"
	EmotionExcitement EmotionLabel = "excitement"
	EmotionNeutral    EmotionLabel = "neutral"
)

// EmotionLabels lists the labels in classifier iteration order.
var EmotionLabels = []EmotionLabel{
	EmotionAnxiety,
	EmotionConfidence,
	EmotionFear,
	EmotionExcitement,
	EmotionNeutral,
}

type EmotionAnalysis struct {
	Label      EmotionLabel         `json:"emotion"`
	Confidence float64              `json:"confidence"`
	Scores     map[EmotionLabel]int `json:"scores"`
}
