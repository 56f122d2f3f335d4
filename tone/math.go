//go:build !fastmath

package tone

import "math"

// mathTanh computes tanh(x) using standard library math.
func mathTanh(x float64) float64 {
	return math.Tanh(x)
}

// mathPow computes x^y using standard library math.
func mathPow(x, y float64) float64 {
	return math.Pow(x, y)
}

// mathSqrt computes sqrt(x) using standard library math.
func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
