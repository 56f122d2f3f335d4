package tape

import (
	"github.com/cwbudde/algo-tape/delay"
	"github.com/cwbudde/algo-tape/noise"
	"github.com/cwbudde/algo-tape/tone"
)

// channel bundles the per-channel tape state: the tape loop itself, the
// head tone filter and the crackle shaper. Both channels run the same
// voice functions; the engine supplies read positions, cutoffs and the
// shared write cursor.
type channel struct {
	line   *delay.Line
	filter tone.Filter
	shaper *noise.Shaper
}

func newChannel(bufferSeconds, sampleRate float64) (channel, error) {
	line, err := delay.NewSeconds(bufferSeconds, sampleRate)
	if err != nil {
		return channel{}, err
	}
	shaper, err := noise.NewShaper()
	if err != nil {
		return channel{}, err
	}
	return channel{line: line, shaper: shaper}, nil
}

// frameState is the per-frame parameter snapshot shared by both
// channels. Values that differ per channel (read position, cutoff) stay
// call arguments.
type frameState struct {
	drive            float32
	mix              float32
	feedbackGain     float32
	health           float32
	crackleThreshold float32
	comp             tone.Compensation
}

// artifacts draws one frame of tape hiss and crackle, in that order, and
// feeds the crackle shaper even when no pop fires so pop tails decay.
func (c *channel) artifacts(fp *frameState, rng *noise.Source) float32 {
	hiss := rng.Noise() * fp.comp.Noise
	pop := c.shaper.Process(rng.Crackle(fp.crackleThreshold))
	return hiss + pop*fp.comp.Crackle
}

// echo runs one frame of the echo voice: play the tape at readPos,
// record input plus filtered saturated feedback at the write cursor,
// and return the dry/wet mix of input and raw playback.
func (c *channel) echo(in, readPos float32, writePos int, cutoff float32, fp *frameState, rng *noise.Source) float32 {
	raw := c.line.ReadFractional(readPos)
	dirt := c.artifacts(fp, rng)

	filtered := c.filter.Process(raw, cutoff)
	record := in + filtered*fp.feedbackGain + dirt
	record *= fp.health
	record = tone.SoftClip(record, fp.drive)
	c.line.Write(writePos, record)

	return in*(1-fp.mix) + raw*fp.comp.Makeup*fp.mix
}

// direct runs one frame of the tape-only voice: saturation and
// artifacts on the dry signal, head filter last, no loop access.
func (c *channel) direct(in, cutoff float32, fp *frameState, rng *noise.Source) float32 {
	signal := in + c.artifacts(fp, rng)
	signal *= fp.health
	signal = tone.SoftClip(signal, fp.drive)
	return c.filter.Process(signal, cutoff) * fp.comp.Makeup
}

func (c *channel) reset() {
	c.line.Reset()
	c.filter.Reset()
	c.shaper.Reset()
}
