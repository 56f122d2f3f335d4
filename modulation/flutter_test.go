package modulation

import (
	"math"
	"testing"
)

func TestNewFlutterValidation(t *testing.T) {
	if _, err := NewFlutter(0, DefaultFlutterRateHz, DefaultFlutterDepth); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewFlutter(44100, 0, DefaultFlutterDepth); err == nil {
		t.Fatal("expected error for zero rate")
	}
	if _, err := NewFlutter(44100, DefaultFlutterRateHz, -1); err == nil {
		t.Fatal("expected error for negative depth")
	}
	if _, err := NewFlutter(44100, math.NaN(), DefaultFlutterDepth); err == nil {
		t.Fatal("expected error for NaN rate")
	}
}

func TestFlutterOffsetWithinDepth(t *testing.T) {
	f, err := NewFlutter(44100, DefaultFlutterRateHz, DefaultFlutterDepth)
	if err != nil {
		t.Fatalf("NewFlutter returned error: %v", err)
	}

	var peak float32
	for range 44100 {
		f.Advance()
		off := f.Offset(0)
		if off < -DefaultFlutterDepth || off > DefaultFlutterDepth {
			t.Fatalf("offset %v outside ±%v", off, DefaultFlutterDepth)
		}
		if off > peak {
			peak = off
		}
	}
	if peak < 0.9*DefaultFlutterDepth {
		t.Fatalf("peak offset %v, want near depth %v", peak, DefaultFlutterDepth)
	}
}

func TestFlutterPeriod(t *testing.T) {
	const sampleRate = 44100.0
	f, _ := NewFlutter(sampleRate, DefaultFlutterRateHz, DefaultFlutterDepth)

	// One full cycle at 1.5 Hz lands back near phase zero.
	frames := int(sampleRate / DefaultFlutterRateHz)
	for range frames {
		f.Advance()
	}
	if off := math.Abs(float64(f.Offset(0))); off > 0.05*DefaultFlutterDepth {
		t.Fatalf("offset after full period = %v, want near 0", off)
	}
}

func TestFlutterPhaseOpposition(t *testing.T) {
	f, _ := NewFlutter(44100, DefaultFlutterRateHz, DefaultFlutterDepth)
	for range 1000 {
		f.Advance()
	}
	l := f.Offset(0)
	r := f.Offset(math.Pi)
	if math.Abs(float64(l)+float64(r)) > 1e-4 {
		t.Fatalf("opposed offsets should cancel: %v + %v", l, r)
	}
}

func TestFlutterPhaseStaysWrapped(t *testing.T) {
	f, _ := NewFlutter(1000, 40, DefaultFlutterDepth)
	for range 100000 {
		f.Advance()
		if p := f.Phase(); p < 0 || p > 2*math.Pi+f.step {
			t.Fatalf("phase %v left the wrap range", p)
		}
	}
}

func TestFlutterSetters(t *testing.T) {
	f, _ := NewFlutter(44100, DefaultFlutterRateHz, DefaultFlutterDepth)
	if err := f.SetRateHz(3); err != nil {
		t.Fatalf("SetRateHz returned error: %v", err)
	}
	if err := f.SetDepth(0); err != nil {
		t.Fatalf("SetDepth returned error: %v", err)
	}
	f.Advance()
	if off := f.Offset(0); off != 0 {
		t.Fatalf("offset with zero depth = %v, want 0", off)
	}
	if err := f.SetRateHz(-1); err == nil {
		t.Fatal("expected error for negative rate")
	}
	if err := f.SetDepth(math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite depth")
	}
}

func BenchmarkFlutterAdvanceOffset(b *testing.B) {
	f, _ := NewFlutter(44100, DefaultFlutterRateHz, DefaultFlutterDepth)

	b.ReportAllocs()

	for b.Loop() {
		f.Advance()
		f.Offset(0)
	}
}
