package srs

import "math"

// MasteryScore returns the share of correct answers as a 0-100 integer.
// Returns 0 when there are no answers.
func MasteryScore(correct, incorrect int) int {
	total := correct + incorrect
	if total <= 0 {
		return 0
	}
	score := int(math.Round(float64(correct) / float64(total) * 100))
	if score > 100 {
		return 100
	}
	return score
}
