package modulation

import (
	"fmt"
	"math"
)

const (
	// DefaultFlutterRateHz is the transport wobble rate.
	DefaultFlutterRateHz = 1.5

	// DefaultFlutterDepth is the wobble depth in samples.
	DefaultFlutterDepth = 15.0

	twoPi = 2 * math.Pi
)

// Flutter is the sine LFO that wobbles the tape transport. Advance moves
// the phase one frame; the engine calls it in every mode so the wobble
// stays continuous across mode and parameter changes.
type Flutter struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	step       float64
	phase      float64
}

// NewFlutter creates a flutter LFO.
func NewFlutter(sampleRate, rateHz, depthSamples float64) (*Flutter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("flutter sample rate must be > 0 and finite: %f", sampleRate)
	}
	f := &Flutter{sampleRate: sampleRate}
	if err := f.SetRateHz(rateHz); err != nil {
		return nil, err
	}
	if err := f.SetDepth(depthSamples); err != nil {
		return nil, err
	}
	return f, nil
}

// SetRateHz updates the wobble rate.
func (f *Flutter) SetRateHz(rateHz float64) error {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return fmt.Errorf("flutter rate must be > 0: %f", rateHz)
	}
	f.rateHz = rateHz
	f.step = twoPi * rateHz / f.sampleRate
	return nil
}

// SetDepth updates the wobble depth in samples.
func (f *Flutter) SetDepth(depthSamples float64) error {
	if depthSamples < 0 || math.IsNaN(depthSamples) || math.IsInf(depthSamples, 0) {
		return fmt.Errorf("flutter depth must be >= 0 and finite: %f", depthSamples)
	}
	f.depth = depthSamples
	return nil
}

// Advance moves the LFO one frame forward.
func (f *Flutter) Advance() {
	f.phase += f.step
	if f.phase > twoPi {
		f.phase -= twoPi
	}
}

// Offset returns the current head wobble in samples, read at the LFO
// phase plus phaseShift.
func (f *Flutter) Offset(phaseShift float64) float32 {
	return float32(math.Sin(f.phase+phaseShift) * f.depth)
}

// Phase returns the current LFO phase in radians.
func (f *Flutter) Phase() float64 {
	return f.phase
}

// Depth returns the wobble depth in samples.
func (f *Flutter) Depth() float64 {
	return f.depth
}
