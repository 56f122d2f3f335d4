package tape

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tape/modulation"
	"github.com/cwbudde/algo-tape/noise"
)

const (
	defaultBufferSeconds = 2.0
	defaultSlewCoeff     = 0.0005
	defaultSafetyMargin  = 100
	defaultMeterRelease  = 30.0
)

type config struct {
	bufferSeconds float64
	flutterRateHz float64
	flutterDepth  float64
	slewCoeff     float64
	safetyMargin  int
	meterRelease  float64
	seed          uint32
}

func defaultConfig() config {
	return config{
		bufferSeconds: defaultBufferSeconds,
		flutterRateHz: modulation.DefaultFlutterRateHz,
		flutterDepth:  modulation.DefaultFlutterDepth,
		slewCoeff:     defaultSlewCoeff,
		safetyMargin:  defaultSafetyMargin,
		meterRelease:  defaultMeterRelease,
		seed:          noise.DefaultSeed,
	}
}

// Option mutates engine tuning before construction.
type Option func(*config) error

// WithBufferSeconds sets the tape loop length in seconds, which bounds
// the longest reachable delay time.
func WithBufferSeconds(seconds float64) Option {
	return func(cfg *config) error {
		if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("buffer length must be > 0 s and finite: %f", seconds)
		}
		cfg.bufferSeconds = seconds
		return nil
	}
}

// WithFlutterRate sets the transport wobble rate in Hz.
func WithFlutterRate(rateHz float64) Option {
	return func(cfg *config) error {
		if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
			return fmt.Errorf("flutter rate must be > 0 Hz: %f", rateHz)
		}
		cfg.flutterRateHz = rateHz
		return nil
	}
}

// WithFlutterDepth sets the transport wobble depth in samples.
func WithFlutterDepth(samples float64) Option {
	return func(cfg *config) error {
		if samples < 0 || math.IsNaN(samples) || math.IsInf(samples, 0) {
			return fmt.Errorf("flutter depth must be >= 0 samples: %f", samples)
		}
		cfg.flutterDepth = samples
		return nil
	}
}

// WithDelaySlew sets the per-frame coefficient easing the transport
// toward a new delay time. Smaller values glide slower.
func WithDelaySlew(coeff float64) Option {
	return func(cfg *config) error {
		if coeff <= 0 || coeff > 1 || math.IsNaN(coeff) {
			return fmt.Errorf("delay slew must be in (0, 1]: %f", coeff)
		}
		cfg.slewCoeff = coeff
		return nil
	}
}

// WithSafetyMargin sets the frames kept between the longest delay and
// the buffer end, covering interpolation and wobble overshoot.
func WithSafetyMargin(frames int) Option {
	return func(cfg *config) error {
		if frames < 0 {
			return fmt.Errorf("safety margin must be >= 0 frames: %d", frames)
		}
		cfg.safetyMargin = frames
		return nil
	}
}

// WithMeterRelease sets the peak-meter fall rate in dB per second.
func WithMeterRelease(db float64) Option {
	return func(cfg *config) error {
		if db <= 0 || math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("meter release must be > 0 dB/s: %f", db)
		}
		cfg.meterRelease = db
		return nil
	}
}

// WithSeed seeds the artifact generator. Zero selects the default seed,
// so two engines built without this option produce identical artifact
// streams.
func WithSeed(seed uint32) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}
