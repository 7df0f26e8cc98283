package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"nflprops/analyzer/internal/models"
	"nflprops/analyzer/internal/odds"
)

// InsufficientLegsError is returned when the risk filter leaves fewer
// qualifying bets than the requested leg count.
type InsufficientLegsError struct {
	Found      int
	Needed     int
	Risk       models.RiskLevel
	Suggestion string
}

func (e *InsufficientLegsError) Error() string {
	return fmt.Sprintf("not enough qualifying bets for %s parlay: found %d, need %d (%s)",
		e.Risk, e.Found, e.Needed, e.Suggestion)
}

// Defaults used when a bet carries no reliability report.
const (
	defaultReliability = 50
	defaultConsistency = 50
	defaultCV          = 50
)

// BuildParlay filters and ranks bets under a risk profile, takes the top
// numLegs survivors as legs and combines their odds. Returns an
// *InsufficientLegsError when fewer than numLegs bets survive the filter.
//
// Combined probability is the product of leg hit rates, not book-implied
// probabilities. This overstates the edge relative to market pricing and is
// kept as an explicit design choice.
func BuildParlay(bets []models.Bet, numLegs int, risk models.RiskLevel, r Roster) (*models.Parlay, error) {
	scored := scoreBets(bets, risk, r)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompositeScore > scored[j].CompositeScore
	})

	if risk == models.RiskBalanced {
		scored = capBackups(scored, 1)
	}

	if len(scored) < numLegs {
		return nil, &InsufficientLegsError{
			Found:      len(scored),
			Needed:     numLegs,
			Risk:       risk,
			Suggestion: fallbackSuggestion(risk),
		}
	}

	legs := scored[:numLegs]

	combinedDecimal := 1.0
	combinedProb := 1.0
	totalTrueEdge := 0.0
	totalHitRate := 0.0
	for _, leg := range legs {
		decimal, err := odds.ToDecimal(leg.Odds)
		if err != nil {
			return nil, fmt.Errorf("invalid odds on leg %s %s: %w", leg.Player, leg.PropType, err)
		}
		combinedDecimal *= decimal
		combinedProb *= leg.Projection.HitRate / 100
		totalTrueEdge += leg.TrueEdge
		totalHitRate += leg.Projection.HitRate
	}

	avgTrueEdge := totalTrueEdge / float64(numLegs)
	american := odds.DecimalToAmerican(combinedDecimal)

	parlayImplied, err := odds.ToImpliedProbability(american)
	if err != nil {
		return nil, fmt.Errorf("combined odds collapsed to zero: %w", err)
	}
	parlayTrueEdge := combinedProb*100 - parlayImplied*100

	payout := combinedDecimal * 100
	profit := payout - 100

	winRate := combinedProb * 100
	actualRisk := models.RiskAggressive
	switch {
	case winRate >= 60:
		actualRisk = models.RiskConservative
	case winRate >= 40:
		actualRisk = models.RiskBalanced
	}

	verdict, reason := parlayVerdict(parlayTrueEdge, avgTrueEdge)

	var warnings []string
	for _, leg := range legs {
		if leg.IsBackup {
			warnings = append(warnings, fmt.Sprintf("Includes backup: %s", leg.Player))
		}
	}
	for _, leg := range legs {
		if leg.IsVolatile {
			warnings = append(warnings, fmt.Sprintf("Volatile prop: %s %s", leg.Player, leg.PropType))
		}
	}

	return &models.Parlay{
		Legs:                legs,
		NumLegs:             numLegs,
		CombinedOdds:        american,
		CombinedDecimal:     combinedDecimal,
		CombinedProbability: round1(combinedProb * 100),
		AvgTrueEdge:         round1(avgTrueEdge),
		TrueEdge:            round1(parlayTrueEdge),
		AvgHitRate:          round1(totalHitRate / float64(numLegs)),
		Payout:              math.Round(payout),
		Profit:              math.Round(profit),
		RequestedRisk:       risk,
		ActualRisk:          actualRisk,
		Recommendation:      verdict,
		Reason:              reason,
		Warnings:            warnings,
	}, nil
}

// scoreBets derives the per-bet ranking fields and applies the risk filter.
func scoreBets(bets []models.Bet, risk models.RiskLevel, r Roster) []models.ScoredBet {
	var scored []models.ScoredBet

	for _, bet := range bets {
		implied, err := odds.ToImpliedProbability(bet.Odds)
		if err != nil {
			continue
		}
		trueEdge := bet.Projection.HitRate - implied*100

		reliability := float64(defaultReliability)
		consistency := float64(defaultConsistency)
		cv := float64(defaultCV)
		if bet.Reliability != nil {
			reliability = bet.Reliability.Score
			consistency = bet.Reliability.Consistency.Score
			cv = bet.Reliability.Consistency.CV
		}

		isBackup := r.IsBackup(bet.Player)
		isVolatile := volatileProp(bet.PropType, bet.Position, cv)

		switch risk {
		case models.RiskConservative:
			if isBackup || reliability < 70 || cv > 25 || trueEdge < 5 || bet.Projection.HitRate < 60 {
				continue
			}
		case models.RiskBalanced:
			if reliability < 55 || trueEdge < 3 || bet.Projection.HitRate < 50 {
				continue
			}
		default: // aggressive
			if trueEdge < 1 {
				continue
			}
		}

		composite := 2*trueEdge + reliability/10 + bet.Projection.HitRate/10
		if isBackup {
			composite -= 10
		}
		if isVolatile {
			composite -= 5
		}

		scored = append(scored, models.ScoredBet{
			Bet:              bet,
			TrueEdge:         trueEdge,
			ReliabilityScore: reliability,
			ConsistencyScore: consistency,
			CV:               cv,
			IsBackup:         isBackup,
			IsVolatile:       isVolatile,
			CompositeScore:   composite,
		})
	}

	return scored
}

// volatileProp flags yardage props with high variance, plus receiving
// yardage for running backs regardless of variance.
func volatileProp(propType, position string, cv float64) bool {
	p := strings.ToLower(propType)
	yardage := strings.Contains(p, "rush_yds") || strings.Contains(p, "reception_yds")
	if yardage && cv > 40 {
		return true
	}
	return strings.Contains(p, "reception_yds") && strings.Contains(strings.ToLower(position), "rb")
}

// capBackups keeps at most max backup legs, in current sort order.
func capBackups(scored []models.ScoredBet, max int) []models.ScoredBet {
	kept := scored[:0:0]
	backups := 0
	for _, bet := range scored {
		if bet.IsBackup {
			if backups >= max {
				continue
			}
			backups++
		}
		kept = append(kept, bet)
	}
	return kept
}

func fallbackSuggestion(risk models.RiskLevel) string {
	switch risk {
	case models.RiskConservative:
		return `try "balanced" risk level`
	case models.RiskBalanced:
		return `try "aggressive" risk level`
	default:
		return "widen the candidate pool or lower the leg count"
	}
}

// parlayVerdict applies the verdict policy in order, first match wins.
func parlayVerdict(parlayTrueEdge, avgTrueEdge float64) (string, string) {
	switch {
	case parlayTrueEdge < 0:
		return "AVOID", "Negative parlay edge"
	case avgTrueEdge < 3:
		return "PASS", "Low average true edge per leg"
	case parlayTrueEdge >= 10 && avgTrueEdge >= 8:
		return "STRONG PLAY", "Excellent true edge on all legs"
	case parlayTrueEdge >= 5 && avgTrueEdge >= 5:
		return "GOOD VALUE", "Solid true edge across legs"
	default:
		return "FAIR", "Positive but thin edge"
	}
}
