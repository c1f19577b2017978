package money

import "math"

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return Round(v, 2)
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
