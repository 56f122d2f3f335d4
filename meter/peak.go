// Package meter provides the peak meters the engine feeds and a display
// layer reads. Values cross threads as atomic float32 bits: the audio
// thread is the single writer, readers never block it.
package meter

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

const (
	defaultReleaseDBPerSecond = 30.0

	// snapFloor is the level below which a decaying meter snaps to
	// silence instead of fading forever.
	snapFloor = 0.001
)

type peakConfig struct {
	releaseDBPerSecond float64
}

// Option mutates meter tuning before construction.
type Option func(*peakConfig) error

// WithReleaseDBPerSecond sets the fall-back rate of the meter.
func WithReleaseDBPerSecond(db float64) Option {
	return func(cfg *peakConfig) error {
		if db <= 0 || math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("meter release must be > 0 dB/s: %f", db)
		}
		cfg.releaseDBPerSecond = db
		return nil
	}
}

// Peak is a single-channel peak-hold meter with exponential release. A
// louder block replaces the held value immediately; quieter blocks let
// it decay by the release rate.
type Peak struct {
	bits           atomic.Uint32
	decayPerSample float64
}

// NewPeak creates a meter for the given sample rate.
func NewPeak(sampleRate float64, opts ...Option) (*Peak, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("meter sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := peakConfig{releaseDBPerSecond: defaultReleaseDBPerSecond}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Peak{
		decayPerSample: core.DBToLinear(-cfg.releaseDBPerSecond / sampleRate),
	}, nil
}

// Update folds one block into the meter: blockMax is the largest
// absolute sample of the block, frames its length. Audio thread only.
func (p *Peak) Update(blockMax float32, frames int) {
	current := math.Float32frombits(p.bits.Load())

	next := blockMax
	if blockMax <= current {
		next = current * float32(math.Pow(p.decayPerSample, float64(frames)))
	}
	if next < snapFloor {
		next = 0
	}
	p.bits.Store(math.Float32bits(next))
}

// Load returns the current meter value. Safe from any thread.
func (p *Peak) Load() float32 {
	return math.Float32frombits(p.bits.Load())
}

// Reset clears the meter to silence.
func (p *Peak) Reset() {
	p.bits.Store(math.Float32bits(0))
}
