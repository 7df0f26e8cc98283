// Package odds converts between American odds, decimal odds and implied
// probability, and combines decimal odds for parlays.
package odds

import (
	"fmt"
	"math"
)

// ErrZeroOdds is returned when American odds of 0 are supplied.
var ErrZeroOdds = fmt.Errorf("american odds of 0 are invalid")

// ToImpliedProbability converts American odds to an implied probability in
// (0,1), assuming no bookmaker margin.
func ToImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}
	if american < 0 {
		a := float64(-american)
		return a / (a + 100), nil
	}
	return 100 / (float64(american) + 100), nil
}

// ToDecimal converts American odds to decimal odds.
func ToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}
	if american < 0 {
		return 100/float64(-american) + 1, nil
	}
	return float64(american)/100 + 1, nil
}

// Combine multiplies decimal odds into combined parlay decimal odds.
func Combine(decimals []float64) float64 {
	combined := 1.0
	for _, d := range decimals {
		combined *= d
	}
	return combined
}

// DecimalToAmerican converts decimal odds back to American format, rounded
// to the nearest integer.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2 {
		return int(math.Round((decimal - 1) * 100))
	}
	return int(math.Round(-100 / (decimal - 1)))
}
