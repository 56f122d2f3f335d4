package modulation

import (
	"testing"

	"github.com/cwbudde/algo-tape/noise"
)

func TestNewDropoutValidation(t *testing.T) {
	if _, err := NewDropout(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewDropout(44100, WithDropoutThreshold(0)); err == nil {
		t.Fatal("expected error for threshold 0")
	}
	if _, err := NewDropout(44100, WithDropoutThreshold(1.5)); err == nil {
		t.Fatal("expected error for threshold above 1")
	}
	if _, err := NewDropout(44100, WithDropoutDuration(0.02, 0.01)); err == nil {
		t.Fatal("expected error for inverted duration band")
	}
	if _, err := NewDropout(44100, WithDegradedHealth(1)); err == nil {
		t.Fatal("expected error for degraded health 1")
	}
	if _, err := NewDropout(44100, WithRecoverySeconds(0)); err == nil {
		t.Fatal("expected error for zero recovery")
	}
	if _, err := NewDropout(44100, WithAttackRatio(0.5)); err == nil {
		t.Fatal("expected error for attack ratio below 1")
	}
}

func TestDropoutHealthyPinsHealth(t *testing.T) {
	d, err := NewDropout(44100)
	if err != nil {
		t.Fatalf("NewDropout returned error: %v", err)
	}
	rng := noise.NewSource(12345)
	before := rng.Seed()

	for range 1000 {
		if h := d.Next(false, rng); h != 1 {
			t.Fatalf("healthy health = %v, want 1", h)
		}
	}
	// Healthy mode must not consume any draws.
	if rng.Seed() != before {
		t.Fatal("healthy mode advanced the generator")
	}
}

func TestDropoutBrokenConsumesOneDraw(t *testing.T) {
	d, _ := NewDropout(44100)
	rng := noise.NewSource(12345)
	ref := noise.NewSource(12345)

	for range 1000 {
		d.Next(true, rng)
		ref.Next()
	}
	if rng.Seed() != ref.Seed() {
		t.Fatalf("stream position %d, want %d", rng.Seed(), ref.Seed())
	}
}

func TestDropoutDipsAndStaysBounded(t *testing.T) {
	const sampleRate = 44100.0
	d, _ := NewDropout(sampleRate)
	rng := noise.NewSource(12345)

	minHealth := float32(1)
	for range int(30 * sampleRate) {
		h := d.Next(true, rng)
		if h < 0 || h > 1 {
			t.Fatalf("health %v outside [0, 1]", h)
		}
		if h < minHealth {
			minHealth = h
		}
	}
	// Thirty broken seconds should include at least one dropout deep
	// enough to approach the degraded level.
	if minHealth > 0.5 {
		t.Fatalf("min health = %v, want a dip below 0.5", minHealth)
	}
}

func TestDropoutRecovers(t *testing.T) {
	const sampleRate = 44100.0
	d, _ := NewDropout(sampleRate, WithDropoutThreshold(0.5))
	rng := noise.NewSource(12345)

	// A loose threshold forces a dropout almost immediately.
	dipped := false
	for range int(sampleRate) {
		if d.Next(true, rng) < 0.5 {
			dipped = true
			break
		}
	}
	if !dipped {
		t.Fatal("no dropout triggered with loose threshold")
	}

	// Raise the threshold so no new dropout can fire, then watch health
	// recover through the release slew.
	if err := d.SetThreshold(1); err != nil {
		t.Fatalf("SetThreshold returned error: %v", err)
	}
	recovered := false
	for range int(sampleRate / 2) {
		if d.Next(true, rng) > 0.99 {
			recovered = true
			break
		}
	}
	if !recovered {
		t.Fatalf("health = %v half a second after dropout, want > 0.99", d.Health())
	}
}

func TestDropoutReset(t *testing.T) {
	d, _ := NewDropout(44100, WithDropoutThreshold(0.5))
	rng := noise.NewSource(12345)
	for range 44100 {
		d.Next(true, rng)
	}
	d.Reset()
	if d.Health() != 1 {
		t.Fatalf("health after Reset = %v, want 1", d.Health())
	}
}

func BenchmarkDropoutNext(b *testing.B) {
	d, _ := NewDropout(44100)
	rng := noise.NewSource(12345)

	b.ReportAllocs()

	for b.Loop() {
		d.Next(true, rng)
	}
}
