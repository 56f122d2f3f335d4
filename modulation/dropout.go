package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tape/noise"
)

const (
	defaultDropoutThreshold  = 0.99995
	defaultDropoutMinSeconds = 0.005
	defaultDropoutMaxSeconds = 0.020
	defaultDegradedHealth    = 0.3
	defaultRecoverySeconds   = 0.030
	defaultAttackRatio       = 40.0
)

type dropoutConfig struct {
	threshold       float64
	minSeconds      float64
	maxSeconds      float64
	degraded        float64
	recoverySeconds float64
	attackRatio     float64
}

// DropoutOption mutates dropout tuning before construction.
type DropoutOption func(*dropoutConfig) error

// WithDropoutThreshold sets the trigger threshold in (0, 1]. A threshold
// of 1 disables triggering entirely.
func WithDropoutThreshold(threshold float64) DropoutOption {
	return func(cfg *dropoutConfig) error {
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("dropout threshold must be in (0, 1]: %f", threshold)
		}
		cfg.threshold = threshold
		return nil
	}
}

// WithDropoutDuration sets the micro-dropout length band in seconds.
func WithDropoutDuration(minSeconds, maxSeconds float64) DropoutOption {
	return func(cfg *dropoutConfig) error {
		if minSeconds <= 0 || maxSeconds < minSeconds {
			return fmt.Errorf("dropout duration must satisfy 0 < min <= max: [%f, %f]", minSeconds, maxSeconds)
		}
		cfg.minSeconds = minSeconds
		cfg.maxSeconds = maxSeconds
		return nil
	}
}

// WithDegradedHealth sets the health level held during a dropout, in [0, 1).
func WithDegradedHealth(health float64) DropoutOption {
	return func(cfg *dropoutConfig) error {
		if health < 0 || health >= 1 {
			return fmt.Errorf("degraded health must be in [0, 1): %f", health)
		}
		cfg.degraded = health
		return nil
	}
}

// WithRecoverySeconds sets the health release time constant.
func WithRecoverySeconds(seconds float64) DropoutOption {
	return func(cfg *dropoutConfig) error {
		if seconds <= 0 {
			return fmt.Errorf("recovery time must be > 0: %f", seconds)
		}
		cfg.recoverySeconds = seconds
		return nil
	}
}

// WithAttackRatio sets how much faster health collapses than it recovers.
func WithAttackRatio(ratio float64) DropoutOption {
	return func(cfg *dropoutConfig) error {
		if ratio < 1 {
			return fmt.Errorf("attack ratio must be >= 1: %f", ratio)
		}
		cfg.attackRatio = ratio
		return nil
	}
}

// Dropout models momentary loss of tape contact. Each broken-mode frame
// draws a trigger from the shared generator; a rare hit starts a
// micro-dropout during which signal health collapses toward the degraded
// level, then recovers over the release time. Healthy mode pins health
// to 1 without drawing, so toggling broken tape never shifts the rest of
// the artifact stream.
type Dropout struct {
	sampleRate  float32
	threshold   float32
	minSeconds  float32
	spanSeconds float32
	degraded    float32
	recovery    float32
	attack      float32

	health float32
	timer  float32
}

// NewDropout creates a dropout smoother for the given sample rate.
func NewDropout(sampleRate float64, opts ...DropoutOption) (*Dropout, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dropout sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := dropoutConfig{
		threshold:       defaultDropoutThreshold,
		minSeconds:      defaultDropoutMinSeconds,
		maxSeconds:      defaultDropoutMaxSeconds,
		degraded:        defaultDegradedHealth,
		recoverySeconds: defaultRecoverySeconds,
		attackRatio:     defaultAttackRatio,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	recovery := float32(1 - math.Exp(-1/(cfg.recoverySeconds*sampleRate)))
	return &Dropout{
		sampleRate:  float32(sampleRate),
		threshold:   float32(cfg.threshold),
		minSeconds:  float32(cfg.minSeconds),
		spanSeconds: float32(cfg.maxSeconds - cfg.minSeconds),
		degraded:    float32(cfg.degraded),
		recovery:    recovery,
		attack:      recovery * float32(cfg.attackRatio),
		health:      1,
	}, nil
}

// SetThreshold updates the trigger threshold in (0, 1].
func (d *Dropout) SetThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("dropout threshold must be in (0, 1]: %f", threshold)
	}
	d.threshold = float32(threshold)
	return nil
}

// Next advances the smoother one frame and returns the current health in
// [0, 1]. In broken mode it consumes exactly one draw from rng; healthy
// mode consumes none.
func (d *Dropout) Next(broken bool, rng *noise.Source) float32 {
	if !broken {
		d.health = 1
		d.timer = 0
		return 1
	}

	draw := rng.Noise()
	if draw < 0 {
		draw = -draw
	}
	if draw > d.threshold && d.timer <= 0 {
		d.timer = (d.minSeconds + draw*d.spanSeconds) * d.sampleRate
	}

	target := float32(1)
	if d.timer > 0 {
		d.timer--
		target = d.degraded
	}

	coeff := d.recovery
	if target < d.health {
		coeff = d.attack
	}
	d.health += (target - d.health) * coeff

	if d.health < 0 {
		d.health = 0
	} else if d.health > 1 {
		d.health = 1
	}
	return d.health
}

// Health returns the current health without advancing.
func (d *Dropout) Health() float32 {
	return d.health
}

// Reset restores full health and cancels any active dropout.
func (d *Dropout) Reset() {
	d.health = 1
	d.timer = 0
}
