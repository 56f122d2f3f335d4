package pluck

import (
	"math"
	"testing"
)

func fill(s *Sequencer, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

func rms(block []float32) float64 {
	sum := 0.0
	for _, v := range block {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(block)))
}

func TestNewSequencerValidation(t *testing.T) {
	for _, rate := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		if _, err := NewSequencer(rate); err == nil {
			t.Errorf("rate %v: expected error", rate)
		}
	}
}

func TestSequencerDeterministic(t *testing.T) {
	a, err := NewSequencer(8000)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	b, _ := NewSequencer(8000)

	x := fill(a, 2000)
	y := fill(b, 2000)
	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("pattern diverged at frame %d", i)
		}
	}
}

func TestSequencerBounded(t *testing.T) {
	s, err := NewSequencer(44100)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	for i, v := range fill(s, 44100) {
		if v < -amplitude || v > amplitude {
			t.Fatalf("frame %d: sample %v outside pattern amplitude", i, v)
		}
	}
}

func TestSequencerRestartsNotes(t *testing.T) {
	s, err := NewSequencer(8000)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	frames := fill(s, 8000)

	// The second onset lands at 0.45 s. The fresh envelope there must be
	// far louder than the decayed tail just before it.
	onset := int(noteSpacingSeconds * 8000)
	tail := rms(frames[onset-200 : onset])
	head := rms(frames[onset : onset+200])
	if head <= tail*2 {
		t.Fatalf("no new note at frame %d: head %v tail %v", onset, head, tail)
	}
}
