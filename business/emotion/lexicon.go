package emotion

import (
	"fmt"
	"os"
	"strings"

	"myDecisionCoach/domain"

	"gopkg.in/yaml.v3"
)

// Lexicon maps each emotion label to the keywords that signal it.
type Lexicon map[domain.EmotionLabel][]string

// DefaultLexicon returns the built-in Russian keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		domain.EmotionAnxiety:    {"переживаю", "тревожно", "боюсь", "не знаю", "сложно", "волнуюсь", "переживание", "стресс"},
		domain.EmotionConfidence: {"уверен", "точно", "определенно", "знаю", "ясно", "четко", "однозначно"},
		domain.EmotionFear:       {"страшно", "опасно", "рискованно", "боюсь", "пугает", "угроза"},
		domain.EmotionExcitement: {"интересно", "круто", "супер", "отлично", "здорово", "восторг", "радует"},
		domain.EmotionNeutral:    {"нужно", "следует", "возможно", "может быть", "думаю", "считаю"},
	}
}

// LoadLexicon reads a YAML file of the form `anxiety: [word, ...]`.
// Unknown labels are rejected; labels missing from the file keep no keywords.
func LoadLexicon(path string) (Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return ParseLexicon(raw)
}

func ParseLexicon(raw []byte) (Lexicon, error) {
	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	known := make(map[domain.EmotionLabel]bool, len(domain.EmotionLabels))
	for _, l := range domain.EmotionLabels {
		known[l] = true
	}

	lex := make(Lexicon, len(parsed))
	for label, words := range parsed {
		l := domain.EmotionLabel(strings.ToLower(strings.TrimSpace(label)))
		if !known[l] {
			return nil, fmt.Errorf("parse lexicon: unknown emotion label %q", label)
		}
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				lex[l] = append(lex[l], w)
			}
		}
	}
	return lex, nil
}
