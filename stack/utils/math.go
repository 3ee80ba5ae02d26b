package utils

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// NonNegative returns v, or 0 when v is negative.
func NonNegative(v int) int {
	return max(v, 0)
}
