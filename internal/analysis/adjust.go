package analysis

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// StatCategory groups prop types by the kind of production they measure.
type StatCategory int

const (
	CategoryOther StatCategory = iota
	CategoryPassing
	CategoryRushing
	CategoryReceiving
)

// Categorize maps a prop type string (e.g. "player_rush_yds",
// "reception_yds") to its stat category.
func Categorize(propType string) StatCategory {
	p := strings.ToLower(propType)
	switch {
	case strings.Contains(p, "rush"):
		return CategoryRushing
	case strings.Contains(p, "reception") || strings.Contains(p, "receiving") || strings.Contains(p, "rec_"):
		return CategoryReceiving
	case strings.Contains(p, "pass"):
		return CategoryPassing
	default:
		return CategoryOther
	}
}

// TeamDefense is a team's season defensive production, supplied by the
// stats collaborator.
type TeamDefense struct {
	Team             string
	PassYardsAllowed float64
	RushYardsAllowed float64
	PointsAllowed    float64
}

// DefenseRankings ranks defenses 1..T by total yards allowed, ascending:
// rank 1 is the stingiest defense.
type DefenseRankings struct {
	ranks map[string]int
	total int
}

// RankDefenses builds rankings from per-team defensive totals.
func RankDefenses(teams []TeamDefense) DefenseRankings {
	sorted := make([]TeamDefense, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti := sorted[i].PassYardsAllowed + sorted[i].RushYardsAllowed
		tj := sorted[j].PassYardsAllowed + sorted[j].RushYardsAllowed
		return ti < tj
	})

	ranks := make(map[string]int, len(sorted))
	for i, t := range sorted {
		ranks[strings.ToUpper(strings.TrimSpace(t.Team))] = i + 1
	}

	return DefenseRankings{ranks: ranks, total: len(sorted)}
}

// Teams returns the number of ranked teams.
func (d DefenseRankings) Teams() int { return d.total }

// Factor returns the matchup multiplier for a stat category against an
// opponent. Unknown opponents get the neutral factor; the degraded
// confidence is logged, never fatal.
func (d DefenseRankings) Factor(opponent string, cat StatCategory) float64 {
	rank, ok := d.ranks[strings.ToUpper(strings.TrimSpace(opponent))]
	if !ok || d.total == 0 {
		log.Debug().Str("opponent", opponent).Msg("No defensive data for opponent, using neutral adjustment")
		return 1.0
	}

	elite := rank <= 10
	poor := rank >= d.total-9

	switch cat {
	case CategoryPassing, CategoryRushing:
		if elite {
			return 0.85
		}
		if poor {
			return 1.15
		}
	case CategoryReceiving:
		if elite {
			return 0.88
		}
		if poor {
			return 1.12
		}
	}
	return 1.0
}

// Conditions describes the venue and weather for a game.
type Conditions struct {
	Dome          bool
	WindMPH       float64
	Precipitation bool
}

// ConditionFactor returns the venue/weather multiplier for a stat category.
// In a dome, weather is ignored and passing gets a small boost. Outdoors,
// wind and precipitation stack multiplicatively.
func ConditionFactor(c Conditions, cat StatCategory) float64 {
	if c.Dome {
		if cat == CategoryPassing || cat == CategoryReceiving {
			return 1.05
		}
		return 1.0
	}

	factor := 1.0

	switch {
	case c.WindMPH >= 15:
		if cat == CategoryPassing || cat == CategoryReceiving {
			factor *= 0.85
		} else if cat == CategoryRushing {
			factor *= 1.10
		}
	case c.WindMPH >= 10:
		if cat == CategoryPassing || cat == CategoryReceiving {
			factor *= 0.93
		}
	}

	if c.Precipitation {
		factor *= 0.90
	}

	return factor
}

// GameScriptFactor returns the spread-driven multiplier for a stat
// category. Spread is from the player's team perspective: positive when
// favored.
func GameScriptFactor(spread float64, cat StatCategory) float64 {
	switch {
	case spread >= 7:
		if cat == CategoryRushing {
			return 1.10
		}
		if cat == CategoryPassing || cat == CategoryReceiving {
			return 0.95
		}
	case spread <= -7:
		if cat == CategoryRushing {
			return 0.90
		}
		if cat == CategoryPassing || cat == CategoryReceiving {
			return 1.10
		}
	case spread >= 3:
		if cat == CategoryRushing {
			return 1.05
		}
		if cat == CategoryPassing || cat == CategoryReceiving {
			return 0.98
		}
	case spread <= -3:
		if cat == CategoryRushing {
			return 0.95
		}
		if cat == CategoryPassing || cat == CategoryReceiving {
			return 1.05
		}
	}
	return 1.0
}

// GameContext carries everything needed to adjust a raw projection for one
// game.
type GameContext struct {
	Opponent   string
	Conditions Conditions
	// Spread is from the player's team perspective, positive when favored.
	Spread float64
}

// AdjustProjection applies the three adjustment sources to a raw projected
// value. Order: opponent defense, then venue/weather, then game script.
// Adjustments apply to the projection, never to the raw stat history.
func AdjustProjection(raw float64, propType string, rankings DefenseRankings, gameCtx GameContext) float64 {
	cat := Categorize(propType)

	adjusted := raw
	adjusted *= rankings.Factor(gameCtx.Opponent, cat)
	adjusted *= ConditionFactor(gameCtx.Conditions, cat)
	adjusted *= GameScriptFactor(gameCtx.Spread, cat)

	return adjusted
}
