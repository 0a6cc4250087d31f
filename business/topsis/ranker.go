// Package topsis ranks alternatives by relative closeness to the ideal solution.
package topsis

import (
	"fmt"
	"math"
	"sort"

	"myDecisionCoach/domain"
)

// Rank scores each row of matrix (options × criteria) against weights.
// directions may be nil, in which case every criterion is benefit-type.
func Rank(names []string, matrix [][]float64, weights []float64, directions []domain.Direction) ([]domain.RankedOption, error) {
	if err := validate(names, matrix, weights, directions); err != nil {
		return nil, err
	}

	weighted := weightedNormalized(matrix, weights)
	ideal, antiIdeal := idealPoints(weighted, directions)

	out := make([]domain.RankedOption, len(matrix))
	for i, row := range weighted {
		dPlus := distance(row, ideal)
		dMinus := distance(row, antiIdeal)

		score := 0.5
		if total := dPlus + dMinus; total > 0 {
			score = dMinus / total
		}

		out[i] = domain.RankedOption{
			Name:  names[i],
			Score: score,
			Index: i,
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}

	return out, nil
}

func validate(names []string, matrix [][]float64, weights []float64, directions []domain.Direction) error {
	if len(matrix) == 0 {
		return fmt.Errorf("%w: evaluation matrix is empty", domain.ErrInvalidInput)
	}
	if len(weights) == 0 {
		return fmt.Errorf("%w: at least one criterion weight is required", domain.ErrInvalidInput)
	}
	if len(names) != len(matrix) {
		return fmt.Errorf("%w: %d option names for %d matrix rows", domain.ErrInvalidInput, len(names), len(matrix))
	}
	if len(directions) != 0 && len(directions) != len(weights) {
		return fmt.Errorf("%w: %d directions for %d criteria", domain.ErrInvalidInput, len(directions), len(weights))
	}
	for j, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("%w: weight %d must be a non-negative number, got %v", domain.ErrInvalidInput, j, w)
		}
	}
	for i, row := range matrix {
		if len(row) != len(weights) {
			return fmt.Errorf("%w: row %d has %d scores, expected %d", domain.ErrInvalidInput, i, len(row), len(weights))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: score [%d][%d] is not a finite number", domain.ErrInvalidInput, i, j)
			}
		}
	}
	for j, d := range directions {
		if d != "" && d != domain.DirectionBenefit && d != domain.DirectionCost {
			return fmt.Errorf("%w: criterion %d has unknown direction %q", domain.ErrInvalidInput, j, d)
		}
	}
	return nil
}

// weightedNormalized divides each column by its Euclidean norm and scales it by its weight.
// A zero-norm column stays all-zero.
func weightedNormalized(matrix [][]float64, weights []float64) [][]float64 {
	m, n := len(matrix), len(weights)

	norms := make([]float64, n)
	for j := range n {
		sumSquares := 0.0
		for i := range m {
			sumSquares += matrix[i][j] * matrix[i][j]
		}
		norms[j] = math.Sqrt(sumSquares)
	}

	out := make([][]float64, m)
	for i := range m {
		out[i] = make([]float64, n)
		for j := range n {
			if norms[j] == 0 {
				continue
			}
			out[i][j] = matrix[i][j] / norms[j] * weights[j]
		}
	}
	return out
}

func idealPoints(weighted [][]float64, directions []domain.Direction) (ideal, antiIdeal []float64) {
	n := len(weighted[0])
	ideal = make([]float64, n)
	antiIdeal = make([]float64, n)

	for j := range n {
		lo, hi := weighted[0][j], weighted[0][j]
		for _, row := range weighted[1:] {
			lo = math.Min(lo, row[j])
			hi = math.Max(hi, row[j])
		}

		if len(directions) > 0 && directions[j] == domain.DirectionCost {
			ideal[j], antiIdeal[j] = lo, hi
		} else {
			ideal[j], antiIdeal[j] = hi, lo
		}
	}
	return ideal, antiIdeal
}

func distance(a, b []float64) float64 {
	sum := 0.0
	for j := range a {
		d := a[j] - b[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}
