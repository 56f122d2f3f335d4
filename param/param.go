// Package param provides the parameter cells shared between a control
// thread and the audio thread. A cell is a single atomic float32 target
// plus an audio-thread linear smoother; per-cell atomicity is the whole
// contract, there is no cross-parameter transactionality.
package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// DefaultSmoothingMs is the ramp length applied to published targets.
const DefaultSmoothingMs = 15.0

// Float is a smoothed float parameter. Store may be called from any
// thread; Next, Current and Reset belong to the audio thread.
type Float struct {
	bits atomic.Uint32

	min float32
	max float32

	rampFrames int

	current   float32
	target    float32
	step      float32
	remaining int
}

// NewFloat creates a parameter with the given initial value and range.
// The ramp length defaults to DefaultSmoothingMs at the given rate.
func NewFloat(initial, min, max float32, sampleRate float64) (*Float, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("param sample rate must be > 0 and finite: %f", sampleRate)
	}
	if !(min < max) {
		return nil, fmt.Errorf("param range is empty: [%f, %f]", min, max)
	}
	if initial < min || initial > max {
		return nil, fmt.Errorf("param initial value %f outside [%f, %f]", initial, min, max)
	}

	p := &Float{
		min:        min,
		max:        max,
		rampFrames: int(DefaultSmoothingMs / 1000 * sampleRate),
		current:    initial,
		target:     initial,
	}
	p.bits.Store(math.Float32bits(initial))
	return p, nil
}

// SetSmoothingMs changes the ramp length. Call before processing starts;
// it is not synchronized with Next.
func (p *Float) SetSmoothingMs(ms, sampleRate float64) error {
	if ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Errorf("smoothing must be >= 0 ms: %f", ms)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("param sample rate must be > 0 and finite: %f", sampleRate)
	}
	p.rampFrames = int(ms / 1000 * sampleRate)
	return nil
}

// Store publishes a new target, clamped to the parameter range. NaN is
// ignored so a bad control value can never poison the smoother.
func (p *Float) Store(v float32) {
	if v != v {
		return
	}
	if v < p.min {
		v = p.min
	} else if v > p.max {
		v = p.max
	}
	p.bits.Store(math.Float32bits(v))
}

// Target returns the most recently published target. Safe from any
// thread.
func (p *Float) Target() float32 {
	return math.Float32frombits(p.bits.Load())
}

// Next advances the smoother one frame and returns the current value.
func (p *Float) Next() float32 {
	t := math.Float32frombits(p.bits.Load())
	if t != p.target {
		p.target = t
		if p.rampFrames <= 0 {
			p.current = t
			p.remaining = 0
		} else {
			p.step = (t - p.current) / float32(p.rampFrames)
			p.remaining = p.rampFrames
		}
	}
	if p.remaining > 0 {
		p.current += p.step
		p.remaining--
		if p.remaining == 0 {
			p.current = p.target
		}
	}
	return p.current
}

// Current returns the smoothed value without advancing.
func (p *Float) Current() float32 {
	return p.current
}

// Reset jumps the smoother and the published target to v (clamped)
// without ramping.
func (p *Float) Reset(v float32) {
	if v != v {
		return
	}
	if v < p.min {
		v = p.min
	} else if v > p.max {
		v = p.max
	}
	p.bits.Store(math.Float32bits(v))
	p.current = v
	p.target = v
	p.remaining = 0
}

// Min returns the lower range bound.
func (p *Float) Min() float32 { return p.min }

// Max returns the upper range bound.
func (p *Float) Max() float32 { return p.max }

// Bool is a flag parameter crossing the same thread boundary.
type Bool struct {
	flag atomic.Bool
}

// NewBool creates a flag with an initial value.
func NewBool(initial bool) *Bool {
	b := &Bool{}
	b.flag.Store(initial)
	return b
}

// Store publishes the flag. Safe from any thread.
func (b *Bool) Store(v bool) {
	b.flag.Store(v)
}

// Load reads the flag. Safe from any thread.
func (b *Bool) Load() bool {
	return b.flag.Load()
}
