package check

// Difficulty band used by callers before evaluation.
const (
	DifficultyVeryEasy         = 5
	DifficultyEasy             = 10
	DifficultyMedium           = 15
	DifficultyHard             = 20
	DifficultyVeryHard         = 25
	DifficultyNearlyImpossible = 30
)

// DefaultDifficulty is used by callers when a request names none.
const DefaultDifficulty = DifficultyMedium

// SnapDifficulty rounds value to the nearest band step in [5, 30].
func SnapDifficulty(value int) int {
	if value <= DifficultyVeryEasy {
		return DifficultyVeryEasy
	}
	if value >= DifficultyNearlyImpossible {
		return DifficultyNearlyImpossible
	}
	return ((value + 2) / 5) * 5
}

// WithDefaults returns r with a missing difficulty set to DefaultDifficulty
// and every difficulty snapped to the band. The opponent difficulty is only
// touched for opposed checks.
func (r Request) WithDefaults() Request {
	if r.Difficulty == 0 {
		r.Difficulty = DefaultDifficulty
	}
	r.Difficulty = SnapDifficulty(r.Difficulty)
	if r.Kind == KindOpposed {
		if r.OpponentDifficulty == 0 {
			r.OpponentDifficulty = DefaultDifficulty
		}
		r.OpponentDifficulty = SnapDifficulty(r.OpponentDifficulty)
	}
	return r
}
