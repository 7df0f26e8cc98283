package analysis

import (
	"fmt"

	"nflprops/analyzer/internal/models"
	"nflprops/analyzer/internal/roster"
)

// Roster is the role reference data the engine consults. Satisfied by
// *roster.Static; swappable per season.
type Roster interface {
	Classify(name string) roster.Role
	IsBackup(name string) bool
	Excluded(name string) bool
}

// ComputeReliability combines consistency, player role, edge quality and
// sample size into a 0-100 score. Each component is independently capped
// and the breakdown is retained so callers can explain the score.
//
// The edge-quality steps intentionally use the signed edge percent; a large
// negative (under) edge scores the minimum.
func ComputeReliability(player, propType string, history []float64, line, edgePercent float64, r Roster) models.Reliability {
	consistency := ComputeConsistency(history, line)

	// Consistency: up to 40 points.
	consistencyPoints := consistency.Score * 0.4

	// Role: up to 25 points.
	role := r.Classify(player)
	var rolePoints float64
	switch role {
	case roster.RoleBackupRB:
		rolePoints = 5
	case roster.RoleBackupTE:
		rolePoints = 10
	case roster.RoleCommittee:
		rolePoints = 15
	default:
		rolePoints = 25
	}

	// Edge quality: up to 20 points.
	var edgePoints float64
	switch {
	case edgePercent >= 50:
		edgePoints = 20
	case edgePercent >= 30:
		edgePoints = 18
	case edgePercent >= 15:
		edgePoints = 15
	case edgePercent >= 8:
		edgePoints = 12
	case edgePercent >= 5:
		edgePoints = 8
	case edgePercent >= 3:
		edgePoints = 5
	default:
		edgePoints = 2
	}

	// Sample size: up to 15 points.
	var samplePoints float64
	switch {
	case len(history) >= 7:
		samplePoints = 15
	case len(history) >= 5:
		samplePoints = 12
	case len(history) >= 3:
		samplePoints = 8
	default:
		samplePoints = 3
	}

	score := consistencyPoints + rolePoints + edgePoints + samplePoints

	factors := []string{
		fmt.Sprintf("Consistency: %.1f/40", consistencyPoints),
		fmt.Sprintf("Role: %.0f/25 (%s)", rolePoints, role),
		fmt.Sprintf("Edge: %.0f/20", edgePoints),
		fmt.Sprintf("Sample: %.0f/15", samplePoints),
	}

	return models.Reliability{
		Score:             round1(score),
		Rating:            reliabilityRating(score),
		ConsistencyPoints: consistencyPoints,
		RolePoints:        rolePoints,
		EdgePoints:        edgePoints,
		SamplePoints:      samplePoints,
		Factors:           factors,
		Consistency:       consistency,
	}
}

func reliabilityRating(score float64) string {
	switch {
	case score >= 85:
		return "Elite"
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
