package commentary

import "math"

// Classify buckets a coefficient into the strength and direction labels shown
// alongside the commentary.
func Classify(r float64) (strength, direction string) {
	direction = "음의"
	if r > 0 {
		direction = "양의"
	}

	switch abs := math.Abs(r); {
	case abs >= 0.7:
		strength = "매우 강한"
	case abs >= 0.5:
		strength = "강한"
	case abs >= 0.3:
		strength = "중간"
	default:
		strength = "약한"
	}
	return strength, direction
}
