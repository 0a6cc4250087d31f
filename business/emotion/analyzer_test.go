package emotion

import (
	"testing"

	"myDecisionCoach/domain"
)

func TestAnalyzeEmptyTextIsNeutral(t *testing.T) {
	got := NewAnalyzer(nil).Analyze("")

	if got.Label != domain.EmotionNeutral {
		t.Fatalf("expected neutral, got %s", got.Label)
	}
	if got.Confidence != 0.1 {
		t.Fatalf("expected confidence 0.1, got %v", got.Confidence)
	}
	for label, n := range got.Scores {
		if n != 0 {
			t.Fatalf("expected zero score for %s, got %d", label, n)
		}
	}
}

func TestAnalyzeConfidentText(t *testing.T) {
	got := NewAnalyzer(nil).Analyze("Я уверен в своём выборе")

	if got.Label != domain.EmotionConfidence {
		t.Fatalf("expected confidence label, got %s", got.Label)
	}
	// one hit over five words, times three
	if diff := got.Confidence - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected confidence 0.6, got %v", got.Confidence)
	}
}

func TestAnalyzeIsCaseInsensitive(t *testing.T) {
	a := NewAnalyzer(nil)
	upper := a.Analyze("Уверен")
	lower := a.Analyze("уверен")

	if upper.Label != lower.Label || upper.Confidence != lower.Confidence {
		t.Fatalf("expected identical results, got %#v vs %#v", upper, lower)
	}
	if upper.Scores[domain.EmotionConfidence] != lower.Scores[domain.EmotionConfidence] {
		t.Fatalf("expected identical scores, got %v vs %v", upper.Scores, lower.Scores)
	}
}

func TestAnalyzeTieGoesToFirstLabel(t *testing.T) {
	// "боюсь" is both an anxiety and a fear keyword
	got := NewAnalyzer(nil).Analyze("боюсь")

	if got.Label != domain.EmotionAnxiety {
		t.Fatalf("expected anxiety to win the tie, got %s", got.Label)
	}
	if got.Scores[domain.EmotionFear] != 1 || got.Scores[domain.EmotionAnxiety] != 1 {
		t.Fatalf("unexpected scores: %v", got.Scores)
	}
}

func TestAnalyzeConfidenceIsClamped(t *testing.T) {
	got := NewAnalyzer(nil).Analyze("супер супер супер")

	if got.Label != domain.EmotionExcitement {
		t.Fatalf("expected excitement, got %s", got.Label)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("expected confidence capped at 0.9, got %v", got.Confidence)
	}
}

func TestAnalyzeCountsMultiWordKeywords(t *testing.T) {
	got := NewAnalyzer(nil).Analyze("может быть, стоит подождать")

	if got.Label != domain.EmotionNeutral {
		t.Fatalf("expected neutral, got %s", got.Label)
	}
	if got.Scores[domain.EmotionNeutral] != 1 {
		t.Fatalf("expected one neutral hit, got %d", got.Scores[domain.EmotionNeutral])
	}
}

func TestCountOverlapping(t *testing.T) {
	if n := countOverlapping("aaaa", "aa"); n != 3 {
		t.Fatalf("expected 3 overlapping matches, got %d", n)
	}
	if n := countOverlapping("abc", ""); n != 0 {
		t.Fatalf("expected 0 for empty keyword, got %d", n)
	}
}

func TestParseLexicon(t *testing.T) {
	raw := []byte("confidence:\n  - Sure\n  - certain\nfear: [scary]\n")

	lex, err := ParseLexicon(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := NewAnalyzer(lex).Analyze("I am SURE and certain")
	if got.Label != domain.EmotionConfidence || got.Scores[domain.EmotionConfidence] != 2 {
		t.Fatalf("unexpected analysis: %#v", got)
	}
}

func TestParseLexiconRejectsUnknownLabel(t *testing.T) {
	if _, err := ParseLexicon([]byte("joy: [yay]\n")); err == nil {
		t.Fatalf("expected error for unknown label")
	}
}
