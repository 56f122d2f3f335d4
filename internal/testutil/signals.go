// Package testutil provides shared test signal builders and tolerance
// asserts in the engine's float32 sample format.
package testutil

import (
	"math"

	"github.com/cwbudde/algo-tape/noise"
)

// DeterministicSine generates a sine block.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise from the repo's own
// generator, so test inputs carry the same reproducibility guarantee as
// the engine's artifact streams.
func DeterministicNoise(seed uint32, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	rng := noise.NewSource(seed)
	for i := range out {
		out[i] = rng.Noise() * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position. An
// out-of-range position yields silence.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.
func Ones(n int) []float32 {
	return DC(1, n)
}
