package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nflprops/analyzer/internal/models"
)

func parlayBet(player string, hitRate float64, odds int, rel, cv float64) models.Bet {
	return models.Bet{
		Player:   player,
		PropType: "player_receptions",
		Side:     models.SideOver,
		Line:     4.5,
		Odds:     odds,
		Projection: models.Projection{
			HitRate:     hitRate,
			EdgePercent: 12,
		},
		Reliability: &models.Reliability{
			Score:       rel,
			Consistency: models.Consistency{Score: 70, CV: cv},
		},
	}
}

func TestBuildParlay_CombinedMath(t *testing.T) {
	bets := []models.Bet{
		parlayBet("Player A", 70, -110, 80, 20),
		parlayBet("Player B", 60, -110, 80, 20),
	}

	parlay, err := BuildParlay(bets, 2, models.RiskAggressive, testRoster())
	require.NoError(t, err)

	// Win probability is the product of leg hit rates
	assert.InDelta(t, 42.0, parlay.CombinedProbability, 0.05)
	assert.InDelta(t, 3.6446, parlay.CombinedDecimal, 0.001)
	assert.Equal(t, 264, parlay.CombinedOdds)
	assert.InDelta(t, 14.5, parlay.TrueEdge, 0.1)
	assert.Equal(t, 364.0, parlay.Payout)
	assert.Equal(t, 264.0, parlay.Profit)
	assert.InDelta(t, 65.0, parlay.AvgHitRate, 0.05)
	assert.Equal(t, models.RiskBalanced, parlay.ActualRisk, "42% win rate plays like balanced")
	assert.Equal(t, "STRONG PLAY", parlay.Recommendation)
}

func TestBuildParlay_RanksByComposite(t *testing.T) {
	bets := []models.Bet{
		parlayBet("Thin Edge", 55, -110, 60, 20),
		parlayBet("Fat Edge", 75, -110, 85, 15),
		parlayBet("Mid Edge", 65, -110, 75, 18),
	}

	parlay, err := BuildParlay(bets, 2, models.RiskAggressive, testRoster())
	require.NoError(t, err)
	require.Len(t, parlay.Legs, 2)

	assert.Equal(t, "Fat Edge", parlay.Legs[0].Player)
	assert.Equal(t, "Mid Edge", parlay.Legs[1].Player)
}

func TestBuildParlay_InsufficientLegs(t *testing.T) {
	// Both bets fail the conservative filter on reliability
	bets := []models.Bet{
		parlayBet("Player A", 65, -110, 50, 20),
		parlayBet("Player B", 65, -110, 40, 20),
	}

	_, err := BuildParlay(bets, 2, models.RiskConservative, testRoster())
	require.Error(t, err)

	var insufficient *InsufficientLegsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, insufficient.Found)
	assert.Equal(t, 2, insufficient.Needed)
	assert.Equal(t, models.RiskConservative, insufficient.Risk)
	assert.Contains(t, insufficient.Suggestion, "balanced")
}

func TestScoreBets_ConservativeFilter(t *testing.T) {
	rst := testRoster()

	good := parlayBet("Good Leg", 65, -110, 80, 20)
	backup := parlayBet("Tyler Allgeier", 65, -110, 80, 20)
	lowReliability := parlayBet("Shaky", 65, -110, 60, 20)
	highVariance := parlayBet("Swingy", 65, -110, 80, 30)
	lowHitRate := parlayBet("Cold", 55, -110, 80, 20)

	scored := scoreBets([]models.Bet{good, backup, lowReliability, highVariance, lowHitRate}, models.RiskConservative, rst)
	require.Len(t, scored, 1, "Only the clean leg survives conservative")
	assert.Equal(t, "Good Leg", scored[0].Player)
	assert.InDelta(t, 12.62, scored[0].TrueEdge, 0.01)
}

func TestScoreBets_AggressiveKeepsThinEdges(t *testing.T) {
	thin := parlayBet("Thin", 54, -110, 40, 45) // trueEdge ~1.6
	negative := parlayBet("Negative", 50, -110, 40, 20)

	scored := scoreBets([]models.Bet{thin, negative}, models.RiskAggressive, testRoster())
	require.Len(t, scored, 1)
	assert.Equal(t, "Thin", scored[0].Player)
}

func TestScoreBets_MissingReliabilityDefaults(t *testing.T) {
	bet := parlayBet("No Report", 65, -110, 0, 0)
	bet.Reliability = nil

	balanced := scoreBets([]models.Bet{bet}, models.RiskBalanced, testRoster())
	assert.Empty(t, balanced, "Default reliability of 50 fails the balanced floor")

	aggressive := scoreBets([]models.Bet{bet}, models.RiskAggressive, testRoster())
	require.Len(t, aggressive, 1)
	assert.Equal(t, 50.0, aggressive[0].ReliabilityScore)
	assert.Equal(t, 50.0, aggressive[0].CV)
}

func TestBuildParlay_BalancedCapsBackups(t *testing.T) {
	bets := []models.Bet{
		parlayBet("Tyler Allgeier", 75, -110, 85, 15),
		parlayBet("Durham Smythe", 74, -110, 85, 15),
		parlayBet("Starter One", 60, -110, 70, 20),
		parlayBet("Starter Two", 58, -110, 70, 20),
	}

	parlay, err := BuildParlay(bets, 3, models.RiskBalanced, testRoster())
	require.NoError(t, err)
	require.Len(t, parlay.Legs, 3)

	backups := 0
	for _, leg := range parlay.Legs {
		if leg.IsBackup {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "Balanced keeps at most one backup")
	assert.Equal(t, "Tyler Allgeier", parlay.Legs[0].Player, "Highest composite backup survives the cap")
}

func TestBuildParlay_Warnings(t *testing.T) {
	volatile := parlayBet("Boom Bust", 70, -110, 80, 45)
	volatile.PropType = "player_rush_yds"

	bets := []models.Bet{
		parlayBet("Tyler Allgeier", 72, -110, 80, 20),
		volatile,
	}

	parlay, err := BuildParlay(bets, 2, models.RiskAggressive, testRoster())
	require.NoError(t, err)

	assert.Contains(t, parlay.Warnings, "Includes backup: Tyler Allgeier")
	assert.Contains(t, parlay.Warnings, "Volatile prop: Boom Bust player_rush_yds")
}

func TestVolatileProp(t *testing.T) {
	assert.True(t, volatileProp("player_rush_yds", "", 45), "High-variance rushing yardage")
	assert.False(t, volatileProp("player_rush_yds", "", 30))
	assert.True(t, volatileProp("player_reception_yds", "RB", 10), "RB receiving yardage regardless of variance")
	assert.False(t, volatileProp("player_receptions", "WR", 80), "Reception counts are never flagged")
	assert.False(t, volatileProp("player_pass_yds", "QB", 90))
}

func TestParlayVerdict(t *testing.T) {
	tests := []struct {
		name        string
		parlayEdge  float64
		avgLegEdge  float64
		wantVerdict string
	}{
		{"negative edge", -1, 10, "AVOID"},
		{"thin legs", 12, 2, "PASS"},
		{"strong", 12, 9, "STRONG PLAY"},
		{"good", 6, 6, "GOOD VALUE"},
		{"fair", 4, 4, "FAIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reason := parlayVerdict(tt.parlayEdge, tt.avgLegEdge)
			assert.Equal(t, tt.wantVerdict, verdict)
			assert.NotEmpty(t, reason)
		})
	}
}
