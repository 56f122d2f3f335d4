package analysis

import (
	"errors"
	"math"
)

// echoFloor is the detection floor for echo peaks, matching the level
// below which the engine meters read silence.
const echoFloor = 0.001

// Errors returned by echo analysis.
var (
	ErrShortResponse     = errors.New("analysis: impulse response shorter than the search start")
	ErrInvalidSampleRate = errors.New("analysis: sample rate must be positive")
	ErrNoEcho            = errors.New("analysis: no echo above the detection floor")
)

// EchoDelay locates the first echo in an impulse response: the largest
// absolute peak at or after minLagMs, which should be chosen past the
// direct impulse region. It returns the peak lag in seconds from the
// start of the response and the absolute level at the peak.
func EchoDelay(ir []float32, sampleRate, minLagMs float64) (lag float64, level float32, err error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, 0, ErrInvalidSampleRate
	}
	if minLagMs < 0 {
		minLagMs = 0
	}
	start := int(minLagMs / 1000 * sampleRate)
	if start >= len(ir) {
		return 0, 0, ErrShortResponse
	}

	best := -1
	peak := float32(0)
	for i := start; i < len(ir); i++ {
		s := ir[i]
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
			best = i
		}
	}
	if best < 0 || peak < echoFloor {
		return 0, 0, ErrNoEcho
	}
	return float64(best) / sampleRate, peak, nil
}
