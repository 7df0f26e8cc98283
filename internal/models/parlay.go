package models

// RiskLevel selects how strictly parlay legs are filtered.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskBalanced     RiskLevel = "balanced"
	RiskAggressive   RiskLevel = "aggressive"
)

// ScoredBet is a Bet augmented with the ranking fields the parlay builder
// derives per invocation.
type ScoredBet struct {
	Bet

	TrueEdge         float64 `json:"true_edge"`
	ReliabilityScore float64 `json:"reliability_score"`
	ConsistencyScore float64 `json:"consistency_score"`
	CV               float64 `json:"cv"`
	IsBackup         bool    `json:"is_backup"`
	IsVolatile       bool    `json:"is_volatile"`
	CompositeScore   float64 `json:"composite_score"`
}

// Parlay is a combined multi-leg bet with aggregate odds, probability and a
// recommendation verdict. Fully rebuilt on each request, immutable once
// returned.
type Parlay struct {
	Legs                []ScoredBet `json:"legs"`
	NumLegs             int         `json:"num_legs"`
	CombinedOdds        int         `json:"combined_odds"`
	CombinedDecimal     float64     `json:"combined_decimal"`
	CombinedProbability float64     `json:"combined_probability"`
	AvgTrueEdge         float64     `json:"avg_true_edge"`
	TrueEdge            float64     `json:"parlay_true_edge"`
	AvgHitRate          float64     `json:"avg_hit_rate"`
	Payout              float64     `json:"payout_on_100"`
	Profit              float64     `json:"profit_on_100"`
	RequestedRisk       RiskLevel   `json:"requested_risk"`
	ActualRisk          RiskLevel   `json:"actual_risk"`
	Recommendation      string      `json:"recommendation"`
	Reason              string      `json:"reason"`
	Warnings            []string    `json:"warnings"`
}
