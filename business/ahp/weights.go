// Package ahp derives criterion weights from raw importance ratings using the
// geometric-mean approximation of the principal eigenvector.
package ahp

import (
	"fmt"
	"math"

	"myDecisionCoach/domain"
)

// ConsistencyThreshold is the usual Saaty cut-off; above it the ratings contradict each other.
const ConsistencyThreshold = 0.1

// randomIndex is Saaty's random consistency index, indexed by matrix size.
var randomIndex = [...]float64{0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41}

const randomIndexBeyondTable = 1.45

// DeriveWeights turns n positive importance ratings into normalized weights
// plus a consistency ratio.
func DeriveWeights(raw []float64) (domain.WeightResult, error) {
	n := len(raw)
	if n == 0 {
		return domain.WeightResult{}, fmt.Errorf("%w: at least one importance rating is required", domain.ErrInvalidInput)
	}
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return domain.WeightResult{}, fmt.Errorf("%w: importance %d must be a positive number, got %v", domain.ErrInvalidInput, i, v)
		}
	}

	if n == 1 {
		return domain.WeightResult{Weights: []float64{1.0}, ConsistencyRatio: 0, Consistent: true}, nil
	}

	m := pairwiseMatrix(raw)
	w := rowGeometricMeans(m)

	sum := 0.0
	for _, v := range w {
		sum += v
	}
	weights := make([]float64, n)
	for i, v := range w {
		weights[i] = v / sum
	}

	cr := consistencyRatio(m, w)

	return domain.WeightResult{
		Weights:          weights,
		ConsistencyRatio: cr,
		Consistent:       cr <= ConsistencyThreshold,
	}, nil
}

// M[i][j] = raw[i] / raw[j]
func pairwiseMatrix(raw []float64) [][]float64 {
	n := len(raw)
	m := make([][]float64, n)
	for i := range n {
		m[i] = make([]float64, n)
		for j := range n {
			if i == j {
				m[i][j] = 1
				continue
			}
			m[i][j] = raw[i] / raw[j]
		}
	}
	return m
}

func rowGeometricMeans(m [][]float64) []float64 {
	n := len(m)
	w := make([]float64, n)
	for i := range n {
		product := 1.0
		for j := range n {
			product *= m[i][j]
		}
		w[i] = math.Pow(product, 1/float64(n))
	}
	return w
}

// consistencyRatio estimates λmax from M·w and compares CI against the random index.
// Sizes with a zero random index (n <= 2) are always consistent.
func consistencyRatio(m [][]float64, w []float64) float64 {
	n := len(m)
	if n < 2 {
		return 0
	}

	lambdaMax := 0.0
	for i := range n {
		row := 0.0
		for j := range n {
			row += m[i][j] * w[j]
		}
		lambdaMax += row / w[i]
	}
	lambdaMax /= float64(n)

	ci := (lambdaMax - float64(n)) / float64(n-1)

	ri := randomIndexBeyondTable
	if n < len(randomIndex) {
		ri = randomIndex[n]
	}
	if ri == 0 {
		return 0
	}

	cr := ci / ri
	// rounding can push a perfectly consistent matrix a hair below zero
	if cr < 0 {
		return 0
	}
	return cr
}
