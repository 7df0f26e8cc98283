package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nflprops/analyzer/internal/roster"
)

func testRoster() *roster.Static {
	return roster.NewStatic(roster.Data{
		BackupRBs:  map[string]string{"Tyler Allgeier": "Bijan Robinson"},
		BackupTEs:  []string{"Durham Smythe"},
		Committees: map[string][]string{"rams": {"Kyren Williams", "Blake Corum"}},
		Exclusions: []string{"Jimmy Garoppolo"},
	})
}

func TestComputeReliability_EliteStarter(t *testing.T) {
	history := []float64{250, 250, 250, 250, 250, 250, 250}
	r := ComputeReliability("Patrick Mahomes", "player_pass_yds", history, 240, 4.2, testRoster())

	assert.Equal(t, 40.0, r.ConsistencyPoints, "Perfect consistency maxes its component")
	assert.Equal(t, 25.0, r.RolePoints, "Unknown player treated as starter")
	assert.Equal(t, 5.0, r.EdgePoints)
	assert.Equal(t, 15.0, r.SamplePoints, "7 games max the sample component")
	assert.Equal(t, 85.0, r.Score)
	assert.Equal(t, "Elite", r.Rating)
	assert.Len(t, r.Factors, 4)
	assert.Equal(t, "Very High", r.Consistency.Rating)
}

func TestComputeReliability_BackupRolePenalty(t *testing.T) {
	history := []float64{50, 55, 60, 52, 58}
	rst := testRoster()

	starter := ComputeReliability("Bijan Robinson", "player_rush_yds", history, 48, 10, rst)
	backup := ComputeReliability("Tyler Allgeier", "player_rush_yds", history, 48, 10, rst)
	backupTE := ComputeReliability("Durham Smythe", "player_receptions", history, 48, 10, rst)
	committee := ComputeReliability("Kyren Williams", "player_rush_yds", history, 48, 10, rst)

	assert.Equal(t, 25.0, starter.RolePoints)
	assert.Equal(t, 5.0, backup.RolePoints)
	assert.Equal(t, 10.0, backupTE.RolePoints)
	assert.Equal(t, 15.0, committee.RolePoints)

	// Same inputs otherwise, so the role gap is exactly the score gap
	assert.InDelta(t, 20.0, starter.Score-backup.Score, 0.01)
}

func TestComputeReliability_EdgeQualitySteps(t *testing.T) {
	history := []float64{100, 100, 100}

	tests := []struct {
		edgePercent float64
		want        float64
	}{
		{55, 20},
		{50, 20},
		{30, 18},
		{15, 15},
		{8, 12},
		{5, 8},
		{3, 5},
		{2.9, 2},
		{0, 2},
	}

	for _, tt := range tests {
		r := ComputeReliability("Test Player", "player_rush_yds", history, 90, tt.edgePercent, testRoster())
		assert.Equal(t, tt.want, r.EdgePoints, "edge percent %.1f", tt.edgePercent)
	}
}

func TestComputeReliability_SignedEdge(t *testing.T) {
	// A large negative (under) edge scores the floor, not the -30 tier
	history := []float64{100, 100, 100, 100, 100}
	r := ComputeReliability("Test Player", "player_rush_yds", history, 150, -30, testRoster())

	assert.Equal(t, 2.0, r.EdgePoints, "Negative edges always land in the default step")
}

func TestComputeReliability_SampleSizeSteps(t *testing.T) {
	tests := []struct {
		games int
		want  float64
	}{
		{8, 15},
		{7, 15},
		{5, 12},
		{3, 8},
		{2, 3},
		{1, 3},
	}

	for _, tt := range tests {
		history := make([]float64, tt.games)
		for i := range history {
			history[i] = 100
		}
		r := ComputeReliability("Test Player", "player_rush_yds", history, 90, 10, testRoster())
		assert.Equal(t, tt.want, r.SamplePoints, "%d games", tt.games)
	}
}

func TestComputeReliability_ScoreIsComponentSum(t *testing.T) {
	history := []float64{60, 72, 55, 80, 65, 70}
	r := ComputeReliability("Test Player", "player_reception_yds", history, 62.5, 6.5, testRoster())

	sum := r.ConsistencyPoints + r.RolePoints + r.EdgePoints + r.SamplePoints
	assert.InDelta(t, sum, r.Score, 0.05)
	assert.GreaterOrEqual(t, r.Score, 0.0)
	assert.LessOrEqual(t, r.Score, 100.0)
}

func TestReliabilityRatingTiers(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{90, "Elite"},
		{85, "Elite"},
		{70, "High"},
		{55, "Medium"},
		{40, "Low"},
		{30, "Very Low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reliabilityRating(tt.score), "score %.1f", tt.score)
	}
}
