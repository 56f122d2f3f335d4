package delay

import (
	"fmt"
	"math"
)

// Line is a fixed-size circular delay buffer addressed by caller-owned
// positions. It keeps no write cursor of its own, so a stereo engine can
// run one shared cursor across several lines.
type Line struct {
	buffer []float32
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float32, size)}, nil
}

// NewSeconds returns a delay line spanning the given duration, rounded up
// to whole samples.
func NewSeconds(seconds, sampleRate float64) (*Line, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("delay span must be > 0 and finite: %f", seconds)
	}
	return New(int(math.Ceil(seconds * sampleRate)))
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Seconds returns the span of the buffer at the given sample rate.
func (d *Line) Seconds(sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(d.buffer)) / sampleRate
}

// Write stores one sample at pos, wrapped into the buffer range.
// Writing to an empty line is a no-op.
func (d *Line) Write(pos int, sample float32) {
	size := len(d.buffer)
	if size == 0 {
		return
	}
	pos %= size
	if pos < 0 {
		pos += size
	}
	d.buffer[pos] = sample
}

// At reads one sample at an integer position, wrapped into the buffer range.
func (d *Line) At(pos int) float32 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	pos %= size
	if pos < 0 {
		pos += size
	}
	return d.buffer[pos]
}

// ReadFractional reads with linear interpolation between the two samples
// around pos. Positions wrap modulo the buffer length, so any finite pos
// is in range; negative positions wrap from the end. A one-sample line
// returns its single stored value and an empty line reads as 0.
func (d *Line) ReadFractional(pos float32) float32 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if size == 1 {
		return d.buffer[0]
	}

	fpos := math.Mod(float64(pos), float64(size))
	if math.IsNaN(fpos) {
		return 0
	}
	if fpos < 0 {
		fpos += float64(size)
	}
	if fpos >= float64(size) {
		fpos = 0
	}

	ia := int(fpos)
	frac := float32(fpos - float64(ia))
	ib := ia + 1
	if ib == size {
		ib = 0
	}
	return d.buffer[ia]*(1-frac) + d.buffer[ib]*frac
}

// Reset clears line contents without reallocating.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
}
