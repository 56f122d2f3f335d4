package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestEchoDelayFindsPeak(t *testing.T) {
	ir := make([]float32, 1000)
	ir[0] = 1
	ir[400] = -0.3 // polarity must not matter

	lag, level, err := EchoDelay(ir, 8000, 10)
	if err != nil {
		t.Fatalf("EchoDelay: %v", err)
	}
	if math.Abs(lag-0.05) > 1e-9 {
		t.Fatalf("lag got %v want 0.05", lag)
	}
	if level != 0.3 {
		t.Fatalf("level got %v want 0.3", level)
	}
}

func TestEchoDelayZeroMinLagSeesDirect(t *testing.T) {
	ir := make([]float32, 100)
	ir[0] = 1
	ir[50] = 0.3

	lag, level, err := EchoDelay(ir, 8000, 0)
	if err != nil {
		t.Fatalf("EchoDelay: %v", err)
	}
	if lag != 0 || level != 1 {
		t.Fatalf("got lag %v level %v, want the direct impulse", lag, level)
	}
}

func TestEchoDelayErrors(t *testing.T) {
	ir := make([]float32, 100)
	ir[0] = 1

	if _, _, err := EchoDelay(ir, 0, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("got %v want ErrInvalidSampleRate", err)
	}
	if _, _, err := EchoDelay(ir, 8000, 1000); !errors.Is(err, ErrShortResponse) {
		t.Fatalf("got %v want ErrShortResponse", err)
	}
	if _, _, err := EchoDelay(make([]float32, 100), 8000, 1); !errors.Is(err, ErrNoEcho) {
		t.Fatalf("got %v want ErrNoEcho", err)
	}
}
