package noise

import "math"

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223

	// DefaultSeed is the seed used when none (or zero) is supplied.
	DefaultSeed uint32 = 12345

	// PopAmplitude is the magnitude of a crackle pop.
	PopAmplitude = 0.2

	// DefaultPopRateHz is the average crackle pop rate at full depth.
	DefaultPopRateHz = 3.0
)

// Source is a 32-bit linear congruential generator. It is intentionally
// simple: one multiply and one add per draw, no allocation, and a fully
// deterministic stream for a given seed. Not safe for concurrent use; the
// engine owns one instance on the audio thread.
type Source struct {
	seed uint32
}

// NewSource returns a generator seeded with seed. A zero seed falls back
// to DefaultSeed so the stream is never degenerate.
func NewSource(seed uint32) *Source {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Source{seed: seed}
}

// Seed returns the current generator state.
func (s *Source) Seed() uint32 {
	return s.seed
}

// Reseed restarts the stream from seed, with the same zero fallback as
// NewSource.
func (s *Source) Reseed(seed uint32) {
	if seed == 0 {
		seed = DefaultSeed
	}
	s.seed = seed
}

// Next advances the generator and returns the raw 32-bit state.
func (s *Source) Next() uint32 {
	s.seed = s.seed*lcgMultiplier + lcgIncrement
	return s.seed
}

// Uniform draws one sample in [0, 1].
func (s *Source) Uniform() float32 {
	return float32(s.Next()) / float32(math.MaxUint32)
}

// Noise draws one bipolar sample in [-1, 1].
func (s *Source) Noise() float32 {
	return s.Uniform()*2 - 1
}

// Crackle draws a trigger; above threshold a pop of ±PopAmplitude fires,
// with the sign taken from the top bit of a second draw so timing and
// polarity stay decorrelated. A call consumes one generator step, or two
// when a pop fires.
func (s *Source) Crackle(threshold float32) float32 {
	if s.Uniform() > threshold {
		if s.Next()&0x80000000 != 0 {
			return PopAmplitude
		}
		return -PopAmplitude
	}
	return 0
}

// PopThreshold returns the Crackle trigger threshold for an average pop
// rate in pops per second at the given sample rate.
func PopThreshold(rateHz, sampleRate float64) float32 {
	if sampleRate <= 0 {
		return 1
	}
	return float32(1 - rateHz/sampleRate)
}
