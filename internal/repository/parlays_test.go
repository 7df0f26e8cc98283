//go:build integration

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nflprops/analyzer/internal/models"
)

func sampleParlay() *models.Parlay {
	return &models.Parlay{
		Legs: []models.ScoredBet{
			{Bet: sampleBet("Patrick Mahomes", 5.9), TrueEdge: 17.6, ReliabilityScore: 82.5},
			{Bet: sampleBet("Josh Allen", 12.4), TrueEdge: 7.6, ReliabilityScore: 74.0},
		},
		NumLegs:             2,
		CombinedOdds:        264,
		CombinedDecimal:     3.6446,
		CombinedProbability: 42.0,
		AvgTrueEdge:         12.6,
		TrueEdge:            14.5,
		AvgHitRate:          65.0,
		Payout:              364,
		Profit:              264,
		RequestedRisk:       models.RiskBalanced,
		ActualRisk:          models.RiskBalanced,
		Recommendation:      "STRONG PLAY",
		Reason:              "Excellent true edge on all legs",
	}
}

func TestParlayRepository_CreateAndGetLatest(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	id, err := db.Parlays.CreateParlay(ctx, sampleParlay())
	require.NoError(t, err, "Should save parlay")
	assert.Greater(t, id, int64(0))

	retrieved, err := db.Parlays.GetLatestParlay(ctx, models.RiskBalanced)
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, 2, retrieved.NumLegs)
	assert.Equal(t, 264, retrieved.CombinedOdds)
	assert.Equal(t, "STRONG PLAY", retrieved.Recommendation)
	require.Len(t, retrieved.Legs, 2, "Legs survive the JSONB round trip")
	assert.Equal(t, "Patrick Mahomes", retrieved.Legs[0].Player)
	assert.Equal(t, 17.6, retrieved.Legs[0].TrueEdge)
}

func TestParlayRepository_GetLatestParlay_NoRows(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	parlay, err := db.Parlays.GetLatestParlay(ctx, models.RiskAggressive)
	require.NoError(t, err, "Missing parlay is nil, not an error")
	assert.Nil(t, parlay)
}

func TestParlayRepository_Validation(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Parlays.CreateParlay(ctx, nil)
	assert.Error(t, err, "Nil parlay should be rejected")

	empty := sampleParlay()
	empty.Legs = nil
	_, err = db.Parlays.CreateParlay(ctx, empty)
	assert.Error(t, err, "Parlay without legs should be rejected")
}
