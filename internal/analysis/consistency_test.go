package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeConsistency_InsufficientHistory(t *testing.T) {
	c := ComputeConsistency([]float64{250, 260}, 249.5)

	assert.Equal(t, "Unknown", c.Rating)
	assert.Equal(t, 0.0, c.Score)
	assert.Equal(t, 0.0, c.CV)
}

func TestComputeConsistency_PerfectlyFlat(t *testing.T) {
	history := []float64{250, 250, 250, 250, 250, 250, 250}
	c := ComputeConsistency(history, 240)

	assert.Equal(t, 0.0, c.StdDev)
	assert.Equal(t, 0.0, c.CV)
	assert.Equal(t, 100.0, c.HitRate)
	assert.Equal(t, 250.0, c.Mean)
	assert.Equal(t, 100.0, c.Score, "Flat history over the line maxes the score")
	assert.Equal(t, "Very High", c.Rating)
}

func TestComputeConsistency_NonPositiveMeanSentinel(t *testing.T) {
	c := ComputeConsistency([]float64{0, 0, 0}, 0.5)

	assert.Equal(t, 999.0, c.CV, "Non-positive mean pins CV at the sentinel")
	assert.Equal(t, 0.0, c.Score)
	assert.Equal(t, "Very Low", c.Rating)
}

func TestComputeConsistency_NegativeHitRateBonus(t *testing.T) {
	// Tight spread but the line sits far above every game: the hit-rate
	// bonus goes deeply negative inside the low-CV band
	c := ComputeConsistency([]float64{100, 101, 102}, 150)

	assert.Less(t, c.CV, 15.0)
	assert.Equal(t, 0.0, c.HitRate)
	assert.Equal(t, 10.0, c.Score)
	assert.Equal(t, "Very Low", c.Rating)
}

func TestComputeConsistency_ModerateSpread(t *testing.T) {
	c := ComputeConsistency([]float64{50, 60, 70, 55, 65}, 58)

	assert.InDelta(t, 60.0, c.Mean, 0.05)
	assert.InDelta(t, 7.91, c.StdDev, 0.01, "Sample standard deviation (n-1)")
	assert.InDelta(t, 13.2, c.CV, 0.05)
	assert.InDelta(t, 60.0, c.HitRate, 0.05)
	assert.Equal(t, 70.0, c.Score)
	assert.Equal(t, "High", c.Rating)
}

func TestComputeConsistency_HighVariance(t *testing.T) {
	// Boom-bust profile lands in the worst CV band
	c := ComputeConsistency([]float64{10, 150, 20, 140, 15}, 60)

	assert.Greater(t, c.CV, 60.0)
	assert.Equal(t, "Very Low", c.Rating)
}

func TestConsistencyRatingTiers(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{90, "Very High"},
		{85, "Very High"},
		{70, "High"},
		{55, "Medium"},
		{40, "Low"},
		{39.9, "Very Low"},
		{0, "Very Low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, consistencyRating(tt.score), "score %.1f", tt.score)
	}
}
