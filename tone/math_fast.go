//go:build fastmath

package tone

import (
	"github.com/meko-christian/algo-approx"
)

// mathTanh computes tanh(x) using a rational approximation, clamped to
// the unit range outside |x| > 3 where the polynomial diverges.
func mathTanh(x float64) float64 {
	if x > 3 {
		return 1
	}
	if x < -3 {
		return -1
	}

	x2 := x * x
	t := x * (27 + x2) / (27 + 9*x2)
	if t > 1 {
		return 1
	}
	if t < -1 {
		return -1
	}
	return t
}

// mathPow computes x^y using fast approximation.
// Uses the identity: x^y = e^(y * ln(x)), valid for x > 0.
func mathPow(x, y float64) float64 {
	return approx.FastExp(y * approx.FastLog(x))
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
