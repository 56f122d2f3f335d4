package noise

import "fmt"

const (
	defaultIntegratorLeak = 0.99
	defaultHighPassCoeff  = 0.9
)

type shaperConfig struct {
	leak    float64
	hpCoeff float64
}

// ShaperOption mutates shaper coefficients before construction.
type ShaperOption func(*shaperConfig) error

// WithIntegratorLeak sets the leaky-integrator feedback in (0, 1).
func WithIntegratorLeak(leak float64) ShaperOption {
	return func(cfg *shaperConfig) error {
		if leak <= 0 || leak >= 1 {
			return fmt.Errorf("integrator leak must be in (0, 1): %f", leak)
		}
		cfg.leak = leak
		return nil
	}
}

// WithHighPassCoeff sets the DC-blocker state weight in [0, 1).
func WithHighPassCoeff(coeff float64) ShaperOption {
	return func(cfg *shaperConfig) error {
		if coeff < 0 || coeff >= 1 {
			return fmt.Errorf("high-pass coefficient must be in [0, 1): %f", coeff)
		}
		cfg.hpCoeff = coeff
		return nil
	}
}

// Shaper rounds raw crackle impulses into pops: a leaky integrator gives
// each impulse a decaying tail, then a one-pole high-pass removes the DC
// buildup so pops stay centered.
type Shaper struct {
	leak    float32
	hpCoeff float32
	hpInput float32

	integrator float32
	hp         float32
}

// NewShaper creates a crackle shaper with tape-tuned defaults.
func NewShaper(opts ...ShaperOption) (*Shaper, error) {
	cfg := shaperConfig{
		leak:    defaultIntegratorLeak,
		hpCoeff: defaultHighPassCoeff,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Shaper{
		leak:    float32(cfg.leak),
		hpCoeff: float32(cfg.hpCoeff),
		hpInput: float32(1 - cfg.hpCoeff),
	}, nil
}

// Process feeds one impulse and returns the shaped pop sample.
func (c *Shaper) Process(impulse float32) float32 {
	c.integrator = (c.integrator + impulse) * c.leak
	out := c.integrator - c.hp
	c.hp = c.integrator*c.hpInput + c.hp*c.hpCoeff
	return out
}

// Reset clears integrator and high-pass state.
func (c *Shaper) Reset() {
	c.integrator = 0
	c.hp = 0
}
