package analysis_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tape/analysis"
	"github.com/cwbudde/algo-tape/tape"
)

// Measure the echo time of a tape engine from its impulse response.
func ExampleEchoDelay() {
	engine, err := tape.New(8000, tape.WithFlutterDepth(0), tape.WithDelaySlew(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	p := engine.Params()
	p.Noise.Reset(0)
	p.Crackle.Reset(0)
	p.Sync.Store(false)
	p.TimeMs.Store(50)

	left := make([]float32, 1000)
	right := make([]float32, 1000)
	left[0] = 1
	right[0] = 1
	engine.Process(left, right)

	lag, _, err := analysis.EchoDelay(left, 8000, 10)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("echo after %.0f ms\n", lag*1000)
	// Output: echo after 50 ms
}

func ExampleSpectrum() {
	const (
		n          = 1024
		sampleRate = 8000.0
	)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 250 * float64(i) / sampleRate)
	}

	mags, err := analysis.Spectrum(samples, analysis.WithAmplitudeScaling())
	if err != nil {
		fmt.Println(err)
		return
	}
	bin := analysis.PeakBin(mags)
	fmt.Printf("peak at %.0f Hz\n", analysis.BinFrequency(bin, n, sampleRate))
	// Output: peak at 250 Hz
}
