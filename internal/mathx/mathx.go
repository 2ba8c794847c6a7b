// Package mathx holds the small numeric helpers shared across the simulation.
package mathx

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp100 bounds v to the canonical 0–100 scalar range.
func Clamp100(v float64) float64 {
	return Clamp(v, 0, 100)
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Round1 rounds to one decimal place. Scalars are stored at this precision so
// serialized state compares bit-for-bit across runs.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundInt rounds to the nearest integer.
func RoundInt(v float64) int {
	return int(math.Round(v))
}
