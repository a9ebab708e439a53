package util

import "math"

// Round2 rounds a monetary amount to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
