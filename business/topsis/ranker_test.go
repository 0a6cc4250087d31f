package topsis

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"myDecisionCoach/domain"
)

func TestRankDominantOptionScoresOne(t *testing.T) {
	got, err := Rank([]string{"first", "second"}, [][]float64{{5, 5}, {1, 1}}, []float64{0.625, 0.375}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got[0].Name != "first" || got[0].Rank != 1 || math.Abs(got[0].Score-1) > 1e-9 {
		t.Fatalf("expected first at rank 1 with score 1, got %#v", got[0])
	}
	if got[1].Name != "second" || got[1].Rank != 2 || math.Abs(got[1].Score) > 1e-9 {
		t.Fatalf("expected second at rank 2 with score 0, got %#v", got[1])
	}
}

func TestRankIdenticalRowsTieAtHalfInInputOrder(t *testing.T) {
	got, err := Rank([]string{"a", "b", "c"}, [][]float64{{3, 3}, {3, 3}, {3, 3}}, []float64{0.5, 0.5}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, want := range []string{"a", "b", "c"} {
		if got[i].Name != want || got[i].Score != 0.5 || got[i].Rank != i+1 {
			t.Fatalf("position %d: unexpected %#v", i, got[i])
		}
	}
}

func TestRankZeroNormColumnDoesNotPanic(t *testing.T) {
	got, err := Rank([]string{"a", "b"}, [][]float64{{0, 5}, {0, 1}}, []float64{0.5, 0.5}, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got[0].Name != "a" || math.IsNaN(got[0].Score) || math.IsNaN(got[1].Score) {
		t.Fatalf("unexpected ranking: %#v", got)
	}
}

func TestRankCostCriterionPrefersLowerValues(t *testing.T) {
	matrix := [][]float64{{5, 5}, {5, 1}}
	weights := []float64{0.5, 0.5}

	benefit, err := Rank([]string{"pricey", "cheap"}, matrix, weights, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if benefit[0].Name != "pricey" {
		t.Fatalf("expected pricey to win as benefit, got %#v", benefit)
	}

	cost, err := Rank([]string{"pricey", "cheap"}, matrix, weights, []domain.Direction{domain.DirectionBenefit, domain.DirectionCost})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cost[0].Name != "cheap" {
		t.Fatalf("expected cheap to win as cost, got %#v", cost)
	}
}

func TestRankEmptyDirectionsMeanBenefit(t *testing.T) {
	matrix := [][]float64{{5, 5}, {5, 1}}
	weights := []float64{0.5, 0.5}

	got, err := Rank([]string{"pricey", "cheap"}, matrix, weights, []domain.Direction{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want, err := Rank([]string{"pricey", "cheap"}, matrix, weights, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %#v, got %#v", want, got)
		}
	}
}

func TestRankPermutationProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 200; trial++ {
		m := 2 + rng.Intn(7)
		n := 1 + rng.Intn(6)

		names := make([]string, m)
		matrix := make([][]float64, m)
		for i := range matrix {
			names[i] = fmt.Sprintf("opt-%d", i)
			matrix[i] = make([]float64, n)
			for j := range matrix[i] {
				matrix[i][j] = float64(1 + rng.Intn(5))
			}
		}
		weights := make([]float64, n)
		total := 0.0
		for j := range weights {
			weights[j] = rng.Float64() + 0.01
			total += weights[j]
		}
		for j := range weights {
			weights[j] /= total
		}

		got, err := Rank(names, matrix, weights, nil)
		if err != nil {
			t.Fatalf("trial %d: unexpected error %v", trial, err)
		}
		if len(got) != m {
			t.Fatalf("trial %d: expected %d results, got %d", trial, m, len(got))
		}

		byName := make(map[string]float64, m)
		for i, r := range got {
			if r.Rank != i+1 {
				t.Fatalf("trial %d: rank gap at %d: %#v", trial, i, got)
			}
			if i > 0 && r.Score > got[i-1].Score {
				t.Fatalf("trial %d: scores increase at %d: %#v", trial, i, got)
			}
			if r.Score < 0 || r.Score > 1 {
				t.Fatalf("trial %d: score out of range: %#v", trial, r)
			}
			byName[r.Name] = r.Score
		}

		// reverse the options and check every option keeps its score
		revNames := make([]string, m)
		revMatrix := make([][]float64, m)
		for i := range names {
			revNames[m-1-i] = names[i]
			revMatrix[m-1-i] = matrix[i]
		}
		rev, err := Rank(revNames, revMatrix, weights, nil)
		if err != nil {
			t.Fatalf("trial %d: unexpected error %v", trial, err)
		}
		for _, r := range rev {
			if math.Abs(byName[r.Name]-r.Score) > 1e-12 {
				t.Fatalf("trial %d: %s scored %v before and %v after permutation", trial, r.Name, byName[r.Name], r.Score)
			}
		}
	}
}

func TestRankRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		names   []string
		matrix  [][]float64
		weights []float64
		dirs    []domain.Direction
	}{
		{"empty matrix", nil, nil, []float64{1}, nil},
		{"row length mismatch", []string{"a", "b"}, [][]float64{{1, 2}, {1}}, []float64{0.5, 0.5}, nil},
		{"name count mismatch", []string{"a"}, [][]float64{{1}, {2}}, []float64{1}, nil},
		{"negative weight", []string{"a", "b"}, [][]float64{{1}, {2}}, []float64{-1}, nil},
		{"direction count mismatch", []string{"a", "b"}, [][]float64{{1}, {2}}, []float64{1}, []domain.Direction{"benefit", "cost"}},
		{"unknown direction", []string{"a", "b"}, [][]float64{{1}, {2}}, []float64{1}, []domain.Direction{"sideways"}},
	}

	for _, tc := range cases {
		if _, err := Rank(tc.names, tc.matrix, tc.weights, tc.dirs); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}
