package tone

import "github.com/cwbudde/algo-dsp/dsp/core"

// Filter is a one-pole low-pass. The cutoff coefficient is a call
// argument rather than a field because the engine spreads it per channel
// and per block.
type Filter struct {
	state float32
}

// Process filters one sample. cutoff is the normalized tracking
// coefficient in (0, 1]; higher values follow the input faster.
func (f *Filter) Process(input, cutoff float32) float32 {
	f.state += cutoff * (input - f.state)
	f.state = float32(core.FlushDenormals(float64(f.state)))
	return f.state
}

// Reset clears filter memory.
func (f *Filter) Reset() {
	f.state = 0
}
