// Package pluck generates the plucked test pattern used by the demo
// commands: a short pentatonic arpeggio with a fast attack and an
// exponential decay, spaced far enough apart to hear the echoes.
package pluck

import (
	"fmt"
	"math"
)

const (
	noteSpacingSeconds = 0.45
	decaySeconds       = 0.16
	attackMs           = 2.0
	amplitude          = 0.5

	twoPi = 2 * math.Pi
)

// A minor pentatonic, up and back down.
var scale = []float64{220, 261.63, 329.63, 392, 329.63, 261.63}

// Sequencer produces one mono sample per call. It holds no random
// state, so two sequencers at the same rate emit identical patterns.
type Sequencer struct {
	sampleRate float64
	noteFrames int
	attack     int
	decay      float32

	note  int
	frame int
	phase float64
	step  float64
	env   float32
}

// NewSequencer creates a pattern generator for the given sample rate.
func NewSequencer(sampleRate float64) (*Sequencer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sample rate must be positive and finite: %f", sampleRate)
	}
	attack := int(attackMs / 1000 * sampleRate)
	if attack < 1 {
		attack = 1
	}
	return &Sequencer{
		sampleRate: sampleRate,
		noteFrames: int(noteSpacingSeconds * sampleRate),
		attack:     attack,
		decay:      float32(math.Exp(-1 / (decaySeconds * sampleRate))),
	}, nil
}

// Next returns the next pattern sample.
func (s *Sequencer) Next() float32 {
	if s.frame == 0 {
		s.step = twoPi * scale[s.note] / s.sampleRate
		s.phase = 0
		s.env = amplitude
		s.note = (s.note + 1) % len(scale)
	}

	out := s.env * float32(math.Sin(s.phase))
	if s.frame < s.attack {
		out *= float32(s.frame) / float32(s.attack)
	}

	s.phase += s.step
	if s.phase >= twoPi {
		s.phase -= twoPi
	}
	s.env *= s.decay
	s.frame++
	if s.frame >= s.noteFrames {
		s.frame = 0
	}
	return out
}
