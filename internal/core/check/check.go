// Package check provides difficulty check primitives and the skill-check
// evaluator used during solo play.
package check

// MeetsDifficulty reports whether total reaches difficulty. Ties succeed.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Margin is how far total lands above (positive) or below (negative)
// difficulty.
func Margin(total, difficulty int) int {
	return total - difficulty
}
