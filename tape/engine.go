package tape

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-tape/meter"
	"github.com/cwbudde/algo-tape/modulation"
	"github.com/cwbudde/algo-tape/noise"
	"github.com/cwbudde/algo-tape/tempo"
	"github.com/cwbudde/algo-tape/tone"
)

// Engine is the stereo tape echo core. Construct with New, publish
// control changes through Params, SetTempo and SetDisplayOpen, and call
// Process from exactly one goroutine.
type Engine struct {
	sampleRate float64

	params *Params

	rng     *noise.Source
	flutter *modulation.Flutter
	dropout *modulation.Dropout

	left  channel
	right channel

	writePos         int
	delayCurrent     float32
	slewCoeff        float32
	safetyMargin     int
	crackleThreshold float32

	wasDistortion bool

	meterLeft  *meter.Peak
	meterRight *meter.Peak

	tempoBits   atomic.Uint64
	displayOpen atomic.Bool
}

// New creates an engine for the given sample rate. The sample rate is
// fixed for the life of the engine.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	params, err := newParams(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("create parameters: %w", err)
	}
	flutter, err := modulation.NewFlutter(sampleRate, cfg.flutterRateHz, cfg.flutterDepth)
	if err != nil {
		return nil, fmt.Errorf("create flutter: %w", err)
	}
	dropout, err := modulation.NewDropout(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("create dropout: %w", err)
	}
	left, err := newChannel(cfg.bufferSeconds, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("create left channel: %w", err)
	}
	right, err := newChannel(cfg.bufferSeconds, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("create right channel: %w", err)
	}
	meterLeft, err := meter.NewPeak(sampleRate, meter.WithReleaseDBPerSecond(cfg.meterRelease))
	if err != nil {
		return nil, fmt.Errorf("create left meter: %w", err)
	}
	meterRight, err := meter.NewPeak(sampleRate, meter.WithReleaseDBPerSecond(cfg.meterRelease))
	if err != nil {
		return nil, fmt.Errorf("create right meter: %w", err)
	}

	e := &Engine{
		sampleRate:       sampleRate,
		params:           params,
		rng:              noise.NewSource(cfg.seed),
		flutter:          flutter,
		dropout:          dropout,
		left:             left,
		right:            right,
		slewCoeff:        float32(cfg.slewCoeff),
		safetyMargin:     cfg.safetyMargin,
		crackleThreshold: noise.PopThreshold(noise.DefaultPopRateHz, sampleRate),
		meterLeft:        meterLeft,
		meterRight:       meterRight,
	}
	e.tempoBits.Store(math.Float64bits(tempo.DefaultBPM))
	return e, nil
}

// Params returns the engine control surface.
func (e *Engine) Params() *Params {
	return e.params
}

// SampleRate returns the rate the engine was built for.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// SetTempo publishes the host tempo in BPM. Safe from any thread.
// Non-positive or non-finite values mean the tempo is unknown; sync
// mode then falls back to tempo.DefaultBPM.
func (e *Engine) SetTempo(bpm float64) {
	e.tempoBits.Store(math.Float64bits(bpm))
}

// Tempo returns the last published host tempo in BPM.
func (e *Engine) Tempo() float64 {
	return math.Float64frombits(e.tempoBits.Load())
}

// SetDisplayOpen tells the engine whether a display layer is reading
// the meters. While closed, Process skips metering entirely.
func (e *Engine) SetDisplayOpen(open bool) {
	e.displayOpen.Store(open)
}

// PeakLevels returns the current meter values. Safe from any thread.
func (e *Engine) PeakLevels() (left, right float32) {
	return e.meterLeft.Load(), e.meterRight.Load()
}

// Process runs one block in place. The channels are processed up to the
// shorter of the two slices. Audio thread only; it never allocates,
// locks or blocks.
func (e *Engine) Process(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	if n == 0 {
		return
	}
	left = left[:n]
	right = right[:n]

	distortion := e.params.DistortionOnly.Load()
	broken := e.params.Broken.Load()

	// Returning from tape-only mode must not replay stale echoes.
	if e.wasDistortion && !distortion {
		e.left.line.Reset()
		e.right.line.Reset()
	}
	e.wasDistortion = distortion

	if !distortion && e.left.line.Len() == 0 {
		return
	}

	if distortion {
		e.processDirect(left, right, broken)
	} else {
		e.processEcho(left, right, broken)
	}

	if e.displayOpen.Load() {
		e.meterLeft.Update(maxAbs(left), n)
		e.meterRight.Update(maxAbs(right), n)
	}
}

func (e *Engine) processEcho(left, right []float32, broken bool) {
	size := e.left.line.Len()

	// Width and the delay target are block-rate reads; the transport
	// slew smooths delay changes per frame anyway.
	width := float64(e.params.Width.Target())
	timeMs := float64(e.params.TimeMs.Target())

	var targetSamples float64
	if e.params.Sync.Load() {
		targetSamples = tempo.DelaySeconds(tempo.Normalized(timeMs), e.Tempo()) * e.sampleRate
	} else {
		targetSamples = timeMs / 1000 * e.sampleRate
	}
	if maxSafe := float64(size - e.safetyMargin); targetSamples > maxSafe {
		targetSamples = maxSafe
	}
	target := float32(targetSamples)

	base := tone.CutoffNormal
	if broken {
		base = tone.CutoffBroken
	}
	cutL, cutR := modulation.SpreadCutoffs(base, width)
	cutoffL := float32(cutL)
	cutoffR := float32(cutR)

	skew := float32(modulation.SkewSamples(width, e.sampleRate))
	phaseR := modulation.PhaseOffset(width)

	for i := range left {
		e.flutter.Advance()
		flutterL := e.flutter.Offset(0)
		flutterR := e.flutter.Offset(phaseR)

		e.delayCurrent = e.delayCurrent*(1-e.slewCoeff) + target*e.slewCoeff

		// Left head reads earlier, right later; the wobble rides on top.
		modDelayL := e.delayCurrent - skew + flutterL
		if modDelayL < 0 {
			modDelayL = 0
		}
		modDelayR := e.delayCurrent + skew + flutterR
		if modDelayR < 0 {
			modDelayR = 0
		}

		mix := e.params.Mix.Next()
		drive := e.params.Gain.Next()
		noiseDepth := e.params.Noise.Next()
		crackleDepth := e.params.Crackle.Next()
		feedback := e.params.Feedback.Next()

		fp := frameState{
			drive:            drive,
			mix:              mix,
			feedbackGain:     tone.FeedbackGain(feedback, drive),
			crackleThreshold: e.crackleThreshold,
			comp:             tone.Compensate(drive, noiseDepth, crackleDepth, tone.MakeupExponentDelay),
		}
		// Dropout draws before the channel artifact draws.
		fp.health = e.dropout.Next(broken, e.rng)

		readL := float32(e.writePos) - modDelayL
		readR := float32(e.writePos) - modDelayR

		left[i] = e.left.echo(left[i], readL, e.writePos, cutoffL, &fp, e.rng)
		right[i] = e.right.echo(right[i], readR, e.writePos, cutoffR, &fp, e.rng)

		e.writePos++
		if e.writePos == size {
			e.writePos = 0
		}
	}
}

func (e *Engine) processDirect(left, right []float32, broken bool) {
	cutoff := float32(tone.CutoffNormal)
	if broken {
		cutoff = float32(tone.CutoffBroken)
	}

	for i := range left {
		// The transport keeps moving so a mode switch never snaps the
		// wobble phase.
		e.flutter.Advance()

		drive := e.params.Gain.Next()
		noiseDepth := e.params.Noise.Next()
		crackleDepth := e.params.Crackle.Next()

		fp := frameState{
			drive:            drive,
			crackleThreshold: e.crackleThreshold,
			comp:             tone.Compensate(drive, noiseDepth, crackleDepth, tone.MakeupExponentDirect),
		}
		fp.health = e.dropout.Next(broken, e.rng)

		left[i] = e.left.direct(left[i], cutoff, &fp, e.rng)
		right[i] = e.right.direct(right[i], cutoff, &fp, e.rng)
	}
}

// Reset clears the audible state: tape content, filters, shapers,
// dropout, meters and parameter ramps. The artifact generator and the
// flutter phase persist so a reset does not restart the session
// texture. Not safe to call concurrently with Process.
func (e *Engine) Reset() {
	e.left.reset()
	e.right.reset()
	e.dropout.Reset()
	e.meterLeft.Reset()
	e.meterRight.Reset()
	e.params.settle()
	e.writePos = 0
}

// maxAbs returns the largest absolute sample in block.
func maxAbs(block []float32) float32 {
	peak := float32(0)
	for _, s := range block {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}
