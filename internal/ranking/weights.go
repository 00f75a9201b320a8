// Package ranking turns per-factor scores and similarity hits into ranked,
// explained match results.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Weights maps factor names to their weight in the final score
type Weights map[string]float64

// factorOrder fixes the summation order so results are reproducible bit for bit.
var factorOrder = []string{
	types.FactorLocation,
	types.FactorTitle,
	types.FactorExperience,
	types.FactorSkills,
	types.FactorGitHub,
	types.FactorEducation,
	types.FactorStartup,
	types.FactorTechStack,
	types.FactorSimilarity,
}

// DefaultWeights returns the standard weighting for candidate ranking.
func DefaultWeights() Weights {
	return Weights{
		types.FactorLocation:   0.15,
		types.FactorTitle:      0.15,
		types.FactorExperience: 0.20,
		types.FactorSkills:     0.20,
		types.FactorGitHub:     0.10,
		types.FactorEducation:  0.10,
		types.FactorStartup:    0.10,
	}
}

// Factors returns the weighted factor names in summation order.
func (w Weights) Factors() []string {
	rank := make(map[string]int, len(factorOrder))
	for i, f := range factorOrder {
		rank[f] = i
	}

	names := make([]string, 0, len(w))
	for f := range w {
		names = append(names, f)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// Sum returns the raw weight total
func (w Weights) Sum() float64 {
	var s float64
	for _, f := range w.Factors() {
		s += w[f]
	}
	return s
}

// Aggregate combines a breakdown into a 0-10 score with one decimal:
// round(10 * sum(score[f] * weight[f]), 1). Factors absent from the breakdown
// count as 0; weights are used as given.
func Aggregate(b types.ScoreBreakdown, w Weights) float64 {
	var sum float64
	for _, f := range w.Factors() {
		sum += b.Get(f) * w[f]
	}
	return types.MatchScore(sum)
}

// ValidateWeights reports weights that are negative, not finite, or do not sum to 1.
// A sum mismatch is only reported once every weight is otherwise valid, and it
// wraps ErrWeightsSum so callers can treat it as a warning.
func ValidateWeights(w Weights) error {
	if len(w) == 0 {
		return &WeightsError{Message: "no weights configured"}
	}
	for _, f := range w.Factors() {
		v := w[f]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &WeightsError{Factor: f, Message: "weight is not a finite number"}
		}
		if v < 0 {
			return &WeightsError{Factor: f, Message: fmt.Sprintf("weight %.2f is negative", v)}
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return &WeightsError{Message: fmt.Sprintf("weights sum to %.4f, expected 1.0", sum), Cause: ErrWeightsSum}
	}
	return nil
}
