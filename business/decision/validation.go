package decision

import (
	"fmt"
	"math"
	"strings"

	"myDecisionCoach/domain"
)

func validateOptions(options []domain.Option) error {
	if len(options) < minOptions || len(options) > maxOptions {
		return fmt.Errorf("%w: expected %d..%d options, got %d", domain.ErrInvalidInput, minOptions, maxOptions, len(options))
	}
	for i, opt := range options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("%w: option %d has empty text", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

func validateNames(names []string) error {
	if len(names) < minOptions || len(names) > maxOptions {
		return fmt.Errorf("%w: expected %d..%d options, got %d", domain.ErrInvalidInput, minOptions, maxOptions, len(names))
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("%w: option %d has empty text", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

func validateMulti(criteria []domain.Criterion, options []string, matrix [][]float64) error {
	if err := validateNames(options); err != nil {
		return err
	}
	if len(criteria) < minCriteria || len(criteria) > maxCriteria {
		return fmt.Errorf("%w: expected %d..%d criteria, got %d", domain.ErrInvalidInput, minCriteria, maxCriteria, len(criteria))
	}
	for i, c := range criteria {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: criterion %d has empty name", domain.ErrInvalidInput, i)
		}
		if !inScoreRange(c.Weight) {
			return fmt.Errorf("%w: criterion %q weight must be within %v..%v, got %v", domain.ErrInvalidInput, c.Name, minScore, maxScore, c.Weight)
		}
	}
	if len(matrix) != len(options) {
		return fmt.Errorf("%w: evaluation matrix has %d rows for %d options", domain.ErrInvalidInput, len(matrix), len(options))
	}
	for i, row := range matrix {
		if len(row) != len(criteria) {
			return fmt.Errorf("%w: option %q has %d scores for %d criteria", domain.ErrInvalidInput, options[i], len(row), len(criteria))
		}
		for j, v := range row {
			if !inScoreRange(v) {
				return fmt.Errorf("%w: score for option %q on %q must be within %v..%v, got %v", domain.ErrInvalidInput, options[i], criteria[j].Name, minScore, maxScore, v)
			}
		}
	}
	return nil
}

func inScoreRange(v float64) bool {
	return !math.IsNaN(v) && v >= minScore && v <= maxScore
}
