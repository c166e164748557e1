package utils

import "math"

// CalculateConsistencyScore blends streak length with lifetime activity
// into a single practice-consistency number shown on the stats screen.
func CalculateConsistencyScore(currentStreak, totalDaysActive, totalCompletions int) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	daysScore := float64(totalDaysActive) * 0.05
	completionScore := float64(totalCompletions) * 0.02

	return streakScore + daysScore + completionScore
}
