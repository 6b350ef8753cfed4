package calculation

import "math"

// Rounding policy: money and physical quantities round to 2 decimals,
// labor hours round to the nearest quarter. Rounding happens only when a
// value is stored into a line item, never on intermediates, so repeated
// recalculation from the same inputs is deterministic.

// RoundBedrag rounds a money amount to 2 decimals
func RoundBedrag(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundKwartier rounds hours to the nearest quarter hour
func RoundKwartier(uren float64) float64 {
	return math.Round(uren*4) / 4
}

// RoundHoeveelheid rounds an area or volume to 2 decimals
func RoundHoeveelheid(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercentage rounds a percentage to 1 decimal
func RoundPercentage(v float64) float64 {
	return math.Round(v*10) / 10
}
