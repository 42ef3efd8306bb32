package geom

// Sign returns -1 for negative numbers and +1 otherwise. Zero deliberately
// maps to +1; the character controller relies on this to stay still at rest.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
