// Package points implements the federation's exposure-based
// points-averaging formula.
//
// A player's ranking score is their total qualifying points divided by an
// exposures-dependent divisor. The divisor never drops below four, so a
// player with few results is averaged as if they had played four events.
package points

import "math"

// Divisor floor mandated by the federation rulebook.
const minDivisor = 4

// Divisor returns the denominator used to average a player's points.
// Up to four exposures share the minimum divisor; beyond that, every two
// additional exposures add one.
func Divisor(exposures int) int {
	if exposures <= minDivisor {
		return minDivisor
	}
	return minDivisor + (exposures-minDivisor)/2
}

// AveragedPoints computes the ranking-determining score for a player:
// totalPoints / Divisor(exposures), rounded half-up.
func AveragedPoints(totalPoints, exposures int) int {
	q := float64(totalPoints) / float64(Divisor(exposures))
	return int(math.Floor(q + 0.5))
}
