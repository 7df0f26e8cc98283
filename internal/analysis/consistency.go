package analysis

import (
	"math"

	"nflprops/analyzer/internal/models"
)

// cvSentinel marks a non-positive mean as maximally unreliable.
const cvSentinel = 999

// ComputeConsistency derives variance-based consistency metrics from a stat
// history and a line. Fewer than 3 observations yields the defined
// degenerate result (score 0, rating "Unknown"), not an error.
func ComputeConsistency(history []float64, line float64) models.Consistency {
	if len(history) < 3 {
		return models.Consistency{Rating: "Unknown"}
	}

	mean := meanOf(history)
	stdDev := sampleStdDev(history, mean)

	cv := float64(cvSentinel)
	if mean > 0 {
		cv = stdDev / mean * 100
	}

	hitsOver := 0
	for _, v := range history {
		if v > line {
			hitsOver++
		}
	}
	hitRate := float64(hitsOver) / float64(len(history)) * 100

	// The hit-rate bonus in each CV band is capped at its maximum but may
	// go negative when hit rate underperforms the band midpoint.
	var score float64
	switch {
	case cv < 15:
		score = 90 + math.Min(10, hitRate-80)
	case cv < 25:
		score = 75 + math.Min(15, (hitRate-70)/2)
	case cv < 40:
		score = 60 + math.Min(15, (hitRate-60)/2)
	case cv < 60:
		score = 40 + math.Min(20, (hitRate-50)/2)
	default:
		score = math.Max(0, 30-(cv-60)/2)
	}

	return models.Consistency{
		Score:   round1(score),
		StdDev:  round2(stdDev),
		CV:      round1(cv),
		HitRate: round1(hitRate),
		Mean:    round1(mean),
		Rating:  consistencyRating(score),
	}
}

func consistencyRating(score float64) string {
	switch {
	case score >= 85:
		return "Very High"
	case score >= 70:
		return "High"
	case score >= 55:
		return "Medium"
	case score >= 40:
		return "Low"
	default:
		return "Very Low"
	}
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 divisor); 0 for a
// single observation.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
