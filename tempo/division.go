// Package tempo maps the delay time control onto musical divisions for
// host-synchronized echo times.
package tempo

import "math"

const (
	// MinTimeMs and MaxTimeMs bound the delay time control.
	MinTimeMs = 1.0
	MaxTimeMs = 1500.0

	// DefaultBPM is used when the host tempo is unknown.
	DefaultBPM = 120.0
)

// Division is one musical subdivision of a quarter note.
type Division struct {
	Multiplier float64
	Label      string
}

// Seconds returns the division length at the given tempo.
func (d Division) Seconds(bpm float64) float64 {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		bpm = DefaultBPM
	}
	return 60 / bpm * d.Multiplier
}

// divisions is the canonical quantizer table, ordered from shortest to
// longest: straight, triplet (T) and dotted (.) subdivisions up to two
// bars.
var divisions = [...]Division{
	{0.0625, "1/64"},
	{0.125, "1/32"},
	{0.1667, "1/16 T"},
	{0.1875, "1/32 ."},
	{0.25, "1/16"},
	{0.3333, "1/8 T"},
	{0.375, "1/16 ."},
	{0.5, "1/8"},
	{0.6667, "1/4 T"},
	{0.75, "1/8 ."},
	{1.0, "1/4"},
	{1.3333, "1/2 T"},
	{1.5, "1/4 ."},
	{2.0, "1/2"},
	{2.6667, "1/1 T"},
	{3.0, "1/2 ."},
	{4.0, "1 Bar"},
	{8.0, "2 Bar"},
}

// Divisions returns a copy of the quantizer table from shortest to
// longest.
func Divisions() []Division {
	out := divisions
	return out[:]
}

// StepIndex maps a normalized control position in [0, 1] to a table
// index. Out-of-range and NaN positions clamp to the nearest end.
func StepIndex(normalized float64) int {
	if math.IsNaN(normalized) || normalized <= 0 {
		return 0
	}
	if normalized >= 1 {
		return len(divisions) - 1
	}
	return int(normalized * float64(len(divisions)))
}

// Quantize returns the division for a normalized control position.
func Quantize(normalized float64) Division {
	return divisions[StepIndex(normalized)]
}

// Normalized maps a delay time in milliseconds to the control position
// in [0, 1].
func Normalized(ms float64) float64 {
	return (ms - MinTimeMs) / (MaxTimeMs - MinTimeMs)
}

// DelaySeconds returns the quantized delay for a normalized control
// position at the given tempo, with the same fallback as
// Division.Seconds for unusable tempos.
func DelaySeconds(normalized, bpm float64) float64 {
	return Quantize(normalized).Seconds(bpm)
}
