package tape

import (
	"github.com/cwbudde/algo-tape/param"
	"github.com/cwbudde/algo-tape/tempo"
)

const (
	defaultGain = 1.0
	minGain     = 1.0
	maxGain     = 10.0

	defaultTimeMs   = 200.0
	defaultFeedback = 0.3
	defaultMix      = 0.3
	defaultNoise    = 0.8
	defaultCrackle  = 0.8
	defaultWidth    = 0.0
)

// Params is the engine control surface. Store on any cell from any
// thread; the engine reads targets at block rate and advances the ramps
// on the audio thread. There is no cross-parameter transactionality, so
// two stores may land in different blocks.
type Params struct {
	// Gain drives the tape saturation stage, 1 to 10.
	Gain *param.Float

	// TimeMs is the delay time control in milliseconds, 1 to 1500. With
	// Sync active the control is quantized to a musical division instead
	// of being read literally.
	TimeMs *param.Float

	// Feedback, Mix, Noise, Crackle and Width are all 0 to 1.
	Feedback *param.Float
	Mix      *param.Float
	Noise    *param.Float
	Crackle  *param.Float
	Width    *param.Float

	// Sync quantizes TimeMs to the tempo division table.
	Sync *param.Bool

	// Broken darkens the head filter and enables random dropouts.
	Broken *param.Bool

	// DistortionOnly bypasses the delay loop, leaving saturation and
	// artifacts on the direct signal.
	DistortionOnly *param.Bool
}

func newParams(sampleRate float64) (*Params, error) {
	var err error
	cell := func(initial, lo, hi float32) *param.Float {
		if err != nil {
			return nil
		}
		var p *param.Float
		p, err = param.NewFloat(initial, lo, hi, sampleRate)
		return p
	}

	params := &Params{
		Gain:     cell(defaultGain, minGain, maxGain),
		TimeMs:   cell(defaultTimeMs, tempo.MinTimeMs, tempo.MaxTimeMs),
		Feedback: cell(defaultFeedback, 0, 1),
		Mix:      cell(defaultMix, 0, 1),
		Noise:    cell(defaultNoise, 0, 1),
		Crackle:  cell(defaultCrackle, 0, 1),
		Width:    cell(defaultWidth, 0, 1),

		Sync:           param.NewBool(true),
		Broken:         param.NewBool(false),
		DistortionOnly: param.NewBool(false),
	}
	if err != nil {
		return nil, err
	}
	return params, nil
}

// settle lands every ramp on its published target without gliding.
func (p *Params) settle() {
	p.Gain.Reset(p.Gain.Target())
	p.TimeMs.Reset(p.TimeMs.Target())
	p.Feedback.Reset(p.Feedback.Target())
	p.Mix.Reset(p.Mix.Target())
	p.Noise.Reset(p.Noise.Target())
	p.Crackle.Reset(p.Crackle.Target())
	p.Width.Reset(p.Width.Target())
}
