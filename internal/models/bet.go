package models

// Side is the side of a prop bet a recommendation refers to.
type Side string

const (
	SideOver  Side = "OVER"
	SideUnder Side = "UNDER"
	SidePass  Side = "PASS"
)

// Confidence is the qualitative confidence attached to a projection.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Line is a sportsbook line: a point threshold priced in American odds.
type Line struct {
	Point     float64 `json:"point"`
	Price     int     `json:"price"`
	Bookmaker string  `json:"bookmaker"`
}

// BestLines holds the best available over and under lines for a player prop
// across sportsbooks. Over and under may come from different books and may
// carry different points.
type BestLines struct {
	Player   string `json:"player"`
	PropType string `json:"prop_type"`
	Over     Line   `json:"best_over"`
	Under    Line   `json:"best_under"`
}

// Projection is the derived result of comparing a stat history against a
// line. Immutable once created; all fields are rounded to one decimal for
// display while recommendation decisions are made on unrounded values.
type Projection struct {
	WeightedAvg    float64    `json:"weighted_avg"`
	HitRate        float64    `json:"hit_rate"`
	Edge           float64    `json:"edge"`
	EdgePercent    float64    `json:"edge_percent"`
	Recommendation Side       `json:"recommendation"`
	Confidence     Confidence `json:"confidence"`
	Games          []float64  `json:"games"`
}

// Consistency holds variance-based sub-metrics for a stat history.
type Consistency struct {
	Score   float64 `json:"consistency_score"`
	StdDev  float64 `json:"std_dev"`
	CV      float64 `json:"coefficient_variation"`
	HitRate float64 `json:"hit_rate"`
	Mean    float64 `json:"mean"`
	Rating  string  `json:"reliability"`
}

// Reliability is the composite 0-100 confidence report for a candidate bet.
// The per-component breakdown is kept for transparency; the components
// always sum to Score.
type Reliability struct {
	Score             float64     `json:"reliability_score"`
	Rating            string      `json:"rating"`
	ConsistencyPoints float64     `json:"consistency_points"`
	RolePoints        float64     `json:"role_points"`
	EdgePoints        float64     `json:"edge_points"`
	SamplePoints      float64     `json:"sample_points"`
	Factors           []string    `json:"factors"`
	Consistency       Consistency `json:"consistency"`
}

// Bet is a qualifying candidate bet produced by the selector.
type Bet struct {
	Player      string       `json:"player"`
	PropType    string       `json:"prop_type"`
	Side        Side         `json:"bet"`
	Line        float64      `json:"line"`
	Odds        int          `json:"odds"`
	Bookmaker   string       `json:"bookmaker"`
	Position    string       `json:"position,omitempty"`
	Projection  Projection   `json:"projection"`
	Reliability *Reliability `json:"reliability,omitempty"`
}
