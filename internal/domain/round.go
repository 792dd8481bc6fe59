package domain

import "math"

// KmRound rounds x half-up at the given number of decimals:
// floor(x·10ⁿ + 0.5) / 10ⁿ. See the package documentation for why this is
// spelled out instead of using math.Round.
func KmRound(x float64, decimals int) float64 {
	pow10 := math.Pow(10, float64(decimals))
	return math.Floor(x*pow10+0.5) / pow10
}
