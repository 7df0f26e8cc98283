package analysis

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/models"
)

// StatsProvider supplies a player's recent per-game stat values, ordered
// oldest to most recent. An empty slice means no usable history.
type StatsProvider interface {
	RecentGames(ctx context.Context, player, statType string, numGames int) ([]float64, error)
}

// OddsProvider supplies the best available over/under lines for a player
// prop. A nil result means no market is currently posted.
type OddsProvider interface {
	BestLines(ctx context.Context, player, propType string) (*models.BestLines, error)
}

// Candidate is a player and the prop markets to evaluate for them.
type Candidate struct {
	Name     string   `json:"name"`
	Props    []string `json:"props"`
	Position string   `json:"position,omitempty"`
}

// Selector scans candidates for qualifying bets.
type Selector struct {
	stats    StatsProvider
	odds     OddsProvider
	roster   Roster
	numGames int
}

// NewSelector creates a selector. numGames bounds the history fetched per
// player (0 means the default of 7).
func NewSelector(stats StatsProvider, odds OddsProvider, r Roster, numGames int) *Selector {
	if numGames <= 0 {
		numGames = 7
	}
	return &Selector{stats: stats, odds: odds, roster: r, numGames: numGames}
}

// SelectBets evaluates each candidate prop against its best over and under
// lines and collects the bets where the projection agrees with the side and
// clears the minimum edge. The result is sorted descending by absolute edge
// percent.
//
// Players on the low-usage exclusion list are dropped before any analysis.
// The match is name-based, case-insensitive and exact; deliberately coarse.
func (s *Selector) SelectBets(ctx context.Context, candidates []Candidate, minEdge float64) ([]models.Bet, error) {
	var bets []models.Bet

	for _, candidate := range candidates {
		if s.roster.Excluded(candidate.Name) {
			log.Debug().Str("player", candidate.Name).Msg("Filtered out: backup/low usage")
			continue
		}

		for _, propType := range candidate.Props {
			lines, err := s.odds.BestLines(ctx, candidate.Name, propType)
			if err != nil {
				log.Warn().Err(err).
					Str("player", candidate.Name).
					Str("prop_type", propType).
					Msg("Failed to fetch lines")
				continue
			}
			if lines == nil {
				log.Debug().
					Str("player", candidate.Name).
					Str("prop_type", propType).
					Msg("No odds posted for prop")
				continue
			}

			statType := strings.TrimPrefix(propType, "player_")
			history, err := s.stats.RecentGames(ctx, candidate.Name, statType, s.numGames)
			if err != nil {
				log.Warn().Err(err).
					Str("player", candidate.Name).
					Str("stat_type", statType).
					Msg("Failed to fetch stat history")
				continue
			}
			if len(history) == 0 {
				log.Debug().
					Str("player", candidate.Name).
					Str("stat_type", statType).
					Msg("No stat history, skipping prop")
				continue
			}

			if bet := s.evaluate(candidate, propType, history, lines.Over, models.SideOver, minEdge); bet != nil {
				bets = append(bets, *bet)
			}
			if bet := s.evaluate(candidate, propType, history, lines.Under, models.SideUnder, minEdge); bet != nil {
				bets = append(bets, *bet)
			}
		}
	}

	sort.SliceStable(bets, func(i, j int) bool {
		return math.Abs(bets[i].Projection.EdgePercent) > math.Abs(bets[j].Projection.EdgePercent)
	})

	return bets, nil
}

// evaluate builds a projection against one line and returns a bet when it
// qualifies: the projection must recommend the side being evaluated and
// clear the minimum absolute edge percent.
func (s *Selector) evaluate(candidate Candidate, propType string, history []float64, line models.Line, side models.Side, minEdge float64) *models.Bet {
	projection := ComputeProjection(history, line.Point)
	if projection == nil {
		return nil
	}

	if math.Abs(projection.EdgePercent) < minEdge || projection.Recommendation != side {
		return nil
	}

	reliability := ComputeReliability(
		candidate.Name, propType, history, line.Point, projection.EdgePercent, s.roster,
	)

	log.Info().
		Str("player", candidate.Name).
		Str("prop_type", propType).
		Str("side", string(side)).
		Float64("line", line.Point).
		Int("odds", line.Price).
		Float64("edge_percent", projection.EdgePercent).
		Float64("reliability", reliability.Score).
		Msg("Qualifying bet found")

	return &models.Bet{
		Player:      candidate.Name,
		PropType:    propType,
		Side:        side,
		Line:        line.Point,
		Odds:        line.Price,
		Bookmaker:   line.Bookmaker,
		Position:    candidate.Position,
		Projection:  *projection,
		Reliability: &reliability,
	}
}
