package analysis

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const defaultDBFloor = -160.0

type spectrumConfig struct {
	windowType window.Type
	decibels   bool
	floorDB    float64
	normalize  bool
}

// SpectrumOption mutates spectrum settings before analysis.
type SpectrumOption func(*spectrumConfig) error

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) SpectrumOption {
	return func(cfg *spectrumConfig) error {
		cfg.windowType = t
		return nil
	}
}

// WithDecibels converts magnitudes to dB, clamped below at floorDB.
func WithDecibels(floorDB float64) SpectrumOption {
	return func(cfg *spectrumConfig) error {
		if floorDB >= 0 || math.IsNaN(floorDB) {
			return fmt.Errorf("dB floor must be < 0: %f", floorDB)
		}
		cfg.decibels = true
		cfg.floorDB = floorDB
		return nil
	}
}

// WithAmplitudeScaling compensates for FFT size and window gain so a
// sine centered on a bin reads as its time-domain amplitude.
func WithAmplitudeScaling() SpectrumOption {
	return func(cfg *spectrumConfig) error {
		cfg.normalize = true
		return nil
	}
}

// Spectrum returns the single-sided magnitude spectrum of samples,
// bins 0 through Nyquist. The input length must be a power of two.
func Spectrum(samples []float64, opts ...SpectrumOption) ([]float64, error) {
	n := len(samples)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("spectrum length must be a power of two >= 2: %d", n)
	}

	cfg := spectrumConfig{windowType: window.TypeHann, floorDB: defaultDBFloor}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	coeffs := window.Generate(cfg.windowType, n)
	in := make([]complex128, n)
	windowSum := 0.0
	for i, s := range samples {
		w := 1.0
		if len(coeffs) == n {
			w = coeffs[i]
		}
		windowSum += w
		in[i] = complex(s*w, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("create fft plan: %w", err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("forward fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)

	if cfg.normalize && windowSum > 0 {
		vecmath.ScaleBlock(mags, mags, 2/windowSum)
	}
	if cfg.decibels {
		for i, m := range mags {
			db := core.LinearToDB(m)
			if db < cfg.floorDB || math.IsNaN(db) {
				db = cfg.floorDB
			}
			mags[i] = db
		}
	}
	return mags, nil
}

// PeakBin returns the index of the largest magnitude, or -1 for an
// empty spectrum. Callers hunting tones usually skip bin 0 themselves.
func PeakBin(mags []float64) int {
	best := -1
	peak := math.Inf(-1)
	for i, m := range mags {
		if m > peak {
			peak = m
			best = i
		}
	}
	return best
}

// BinFrequency returns the center frequency in Hz of a bin for the FFT
// size that produced it.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}
