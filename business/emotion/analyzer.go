package emotion

import (
	"strings"
	"unicode/utf8"

	"myDecisionCoach/domain"
)

const (
	minConfidence = 0.1
	maxConfidence = 0.9
	densityBoost  = 3.0
)

// Analyzer classifies free text into one dominant affect label by keyword density.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
}

// NewAnalyzer returns an Analyzer over lex; a nil lexicon selects DefaultLexicon.
func NewAnalyzer(lex Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Analyzer{lexicon: lex}
}

// Analyze never fails: empty text yields neutral with the minimum confidence.
func (a *Analyzer) Analyze(text string) domain.EmotionAnalysis {
	lower := strings.ToLower(text)

	scores := make(map[domain.EmotionLabel]int, len(domain.EmotionLabels))
	best := domain.EmotionNeutral
	bestCount := 0

	for _, label := range domain.EmotionLabels {
		count := 0
		for _, kw := range a.lexicon[label] {
			count += countOverlapping(lower, kw)
		}
		scores[label] = count

		// strict comparison: ties keep the label seen first
		if count > bestCount {
			best = label
			bestCount = count
		}
	}

	words := len(strings.Fields(text))
	if words < 1 {
		words = 1
	}

	return domain.EmotionAnalysis{
		Label:      best,
		Confidence: clamp(float64(bestCount)/float64(words)*densityBoost, minConfidence, maxConfidence),
		Scores:     scores,
	}
}

// countOverlapping counts occurrences of sub in s, allowing matches to overlap.
func countOverlapping(s, sub string) int {
	if sub == "" {
		return 0
	}
	count := 0
	for {
		i := strings.Index(s, sub)
		if i < 0 {
			return count
		}
		count++
		_, size := utf8.DecodeRuneInString(s[i:])
		s = s[i+size:]
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
