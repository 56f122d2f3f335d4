package analysis

import (
	"math"
	"testing"
)

func sineWave(n int, freq, amp, sampleRate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestSpectrumValidation(t *testing.T) {
	if _, err := Spectrum(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Spectrum(make([]float64, 1000)); err == nil {
		t.Fatal("expected error for non-power-of-two length")
	}
	if _, err := Spectrum(make([]float64, 1)); err == nil {
		t.Fatal("expected error for length 1")
	}
	if _, err := Spectrum(make([]float64, 64), WithDecibels(0)); err == nil {
		t.Fatal("expected error for non-negative dB floor")
	}
}

func TestSpectrumFindsTone(t *testing.T) {
	const (
		n          = 1024
		sampleRate = 8000.0
	)
	// 250 Hz sits exactly on bin 32 at this size and rate.
	mags, err := Spectrum(sineWave(n, 250, 1, sampleRate))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if got, want := len(mags), n/2+1; got != want {
		t.Fatalf("bin count got %d want %d", got, want)
	}

	bin := PeakBin(mags)
	if bin != 32 {
		t.Fatalf("peak bin got %d want 32", bin)
	}
	if got := BinFrequency(bin, n, sampleRate); got != 250 {
		t.Fatalf("peak frequency got %v want 250", got)
	}
}

func TestSpectrumAmplitudeScaling(t *testing.T) {
	const n = 1024
	mags, err := Spectrum(sineWave(n, 250, 0.5, 8000), WithAmplitudeScaling())
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if got := mags[32]; math.Abs(got-0.5) > 1e-3 {
		t.Fatalf("scaled peak got %v want 0.5", got)
	}
}

func TestSpectrumDecibels(t *testing.T) {
	const floor = -120.0
	mags, err := Spectrum(sineWave(1024, 250, 1, 8000), WithDecibels(floor))
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}

	peak := mags[PeakBin(mags)]
	lowest := math.Inf(1)
	for _, m := range mags {
		if m < floor {
			t.Fatalf("bin below floor: %v", m)
		}
		if m < lowest {
			lowest = m
		}
	}
	if lowest != floor {
		t.Fatalf("quiet bins should clamp to the floor, got %v", lowest)
	}
	if peak < 40 {
		// A full-scale bin-centered sine over 1024 samples lands far
		// above any leakage.
		t.Fatalf("peak dB suspiciously low: %v", peak)
	}
}

func TestPeakBinEmpty(t *testing.T) {
	if got := PeakBin(nil); got != -1 {
		t.Fatalf("got %d want -1", got)
	}
}

func TestBinFrequencyDegenerate(t *testing.T) {
	if got := BinFrequency(10, 0, 8000); got != 0 {
		t.Fatalf("got %v want 0 for zero fft size", got)
	}
}

func BenchmarkSpectrum(b *testing.B) {
	samples := sineWave(4096, 440, 1, 44100)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Spectrum(samples); err != nil {
			b.Fatalf("Spectrum: %v", err)
		}
	}
}
