package tone

const (
	// MakeupExponentDirect compensates the saturation-only path.
	MakeupExponentDirect = 0.60

	// MakeupExponentDelay compensates the echo path, which re-saturates
	// its feedback and needs a gentler pullback.
	MakeupExponentDelay = 0.35

	// NoiseBase and CrackleBase are the full-depth artifact amounts
	// before drive compensation.
	NoiseBase   = 0.005
	CrackleBase = 0.15

	// CutoffNormal and CutoffBroken are the head-filter coefficients for
	// the two tape conditions.
	CutoffNormal = 0.85
	CutoffBroken = 0.45

	// FeedbackBoost lifts the feedback parameter into loop gain so
	// repeats stay audible through the saturation stage.
	FeedbackBoost = 1.2
)

// SoftClip drives one sample through a tanh saturation stage.
func SoftClip(sample, drive float32) float32 {
	return float32(mathTanh(float64(sample) * float64(drive)))
}

// Compensation holds the loudness-matching gains derived from the
// saturation drive: makeup for the wet signal, plus noise and crackle
// amounts scaled so artifacts stay level as drive rises.
type Compensation struct {
	Makeup  float32
	Noise   float32
	Crackle float32
}

// Compensate derives the compensation for a drive level. exponent selects
// how much of the tanh loudness increase to pull back, normally
// MakeupExponentDirect or MakeupExponentDelay. Non-positive drive yields
// the neutral compensation.
func Compensate(drive, noiseDepth, crackleDepth float32, exponent float64) Compensation {
	g := float64(drive)
	makeup := 1.0
	factor := 1.0
	if g > 0 {
		makeup = 1 / mathPow(g, exponent)
		factor = g * makeup
	}
	return Compensation{
		Makeup:  float32(makeup),
		Noise:   float32(NoiseBase/factor) * noiseDepth,
		Crackle: float32(CrackleBase/factor) * crackleDepth,
	}
}

// FeedbackGain converts the feedback parameter into the loop gain used
// when re-recording the delayed signal. The boost keeps repeats audible
// through the saturation stage, tempered by the drive so hot settings do
// not run away.
func FeedbackGain(feedback, drive float32) float32 {
	g := float64(drive)
	if g <= 0 {
		g = 1
	}
	return float32(float64(feedback) * FeedbackBoost / mathSqrt(g))
}
