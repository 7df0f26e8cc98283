// Package analysis implements the projection, scoring and parlay engine.
// Everything in this package is a deterministic, side-effect-free function
// over in-memory inputs; all I/O lives in the provider implementations.
package analysis

import (
	"math"

	"nflprops/analyzer/internal/models"
)

// ComputeProjection derives a projection from a player's recent per-game
// stat values and a sportsbook line. History is ordered oldest to most
// recent; the most recent game carries the highest weight. Returns nil when
// the history is empty.
//
// Edge percent is defined as 0 when the line is 0 rather than treating
// the division as an error.
func ComputeProjection(history []float64, line float64) *models.Projection {
	if len(history) == 0 {
		return nil
	}

	// Linear weights 1..N, most recent game weighted N.
	var weightedSum, weightTotal float64
	for i, v := range history {
		w := float64(i + 1)
		weightedSum += v * w
		weightTotal += w
	}
	weightedAvg := weightedSum / weightTotal

	hitsOver := 0
	for _, v := range history {
		if v > line {
			hitsOver++
		}
	}
	hitRate := float64(hitsOver) / float64(len(history)) * 100

	edge := weightedAvg - line
	edgePercent := 0.0
	if line != 0 {
		edgePercent = edge / line * 100
	}

	recommendation, confidence := recommend(edge, edgePercent, hitRate)

	games := make([]float64, len(history))
	copy(games, history)

	return &models.Projection{
		WeightedAvg:    round1(weightedAvg),
		HitRate:        round1(hitRate),
		Edge:           round1(edge),
		EdgePercent:    round1(edgePercent),
		Recommendation: recommendation,
		Confidence:     confidence,
		Games:          games,
	}
}

// recommend applies the recommendation policy in order, first match wins.
// Decisions use unrounded values.
func recommend(edge, edgePercent, hitRate float64) (models.Side, models.Confidence) {
	switch {
	case math.Abs(edgePercent) < 3 || (45 < hitRate && hitRate < 55):
		return models.SidePass, models.ConfidenceLow
	case edge > 0 && edgePercent >= 8 && hitRate >= 55:
		return models.SideOver, models.ConfidenceHigh
	case edge > 0 && edgePercent >= 3:
		return models.SideOver, models.ConfidenceMedium
	case edge < 0 && edgePercent <= -8 && hitRate <= 45:
		return models.SideUnder, models.ConfidenceHigh
	case edge < 0 && edgePercent <= -3:
		return models.SideUnder, models.ConfidenceMedium
	default:
		return models.SidePass, models.ConfidenceLow
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
