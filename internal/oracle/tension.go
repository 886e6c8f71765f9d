package oracle

// Tension band.
const (
	MinTension     = 1
	MaxTension     = 9
	MidTension     = 5
	DefaultTension = MidTension
)

// ClampTension forces value into [MinTension, MaxTension].
func ClampTension(value int) int {
	if value < MinTension {
		return MinTension
	}
	if value > MaxTension {
		return MaxTension
	}
	return value
}

// UpdateTension moves tension one step down when the protagonists were in
// control of the scene and one step up when they were not.
func UpdateTension(current int, protagonistsInControl bool) int {
	next := ClampTension(current)
	if protagonistsInControl {
		next--
	} else {
		next++
	}
	return ClampTension(next)
}
