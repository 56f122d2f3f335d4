package modulation

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

const (
	// DefaultSkewSeconds is the maximum Haas head offset at full width.
	DefaultSkewSeconds = 0.010

	// DefaultToneSpread is the maximum cutoff separation at full width.
	DefaultToneSpread = 0.15

	minSpreadCutoff = 0.1
	maxSpreadCutoff = 0.95
)

// PhaseOffset returns the right-channel LFO phase lead for a stereo
// width in [0, 1]. Full width puts the channel wobbles in opposition, so
// one head pitches up while the other pitches down.
func PhaseOffset(width float64) float64 {
	return width * math.Pi
}

// SkewSamples returns the Haas head offset in samples. The left head
// reads earlier by this amount and the right head later.
func SkewSamples(width, sampleRate float64) float64 {
	return width * DefaultSkewSeconds * sampleRate
}

// SpreadCutoffs derives per-channel tone cutoffs from a base cutoff: the
// left channel darkens and the right brightens as width grows, both held
// inside the stable filter band.
func SpreadCutoffs(base, width float64) (left, right float64) {
	spread := width * DefaultToneSpread
	left = core.Clamp(base-spread, minSpreadCutoff, maxSpreadCutoff)
	right = core.Clamp(base+spread, minSpreadCutoff, maxSpreadCutoff)
	return left, right
}
