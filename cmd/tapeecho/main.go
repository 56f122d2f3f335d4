// Command tapeecho plays a plucked test pattern through the tape echo
// engine and maps keys to the engine parameters while it runs.
//
// Usage:
//
//	tapeecho [flags]
//
// Keys:
//
//	t/T  delay time down/up    f/F  feedback down/up
//	m/M  wet mix down/up       w/W  stereo width down/up
//	g/G  input gain down/up    n/N  hiss down/up
//	c/C  crackle down/up       s    tempo sync on/off
//	b    broken transport      x    tape-only mode
//	q    quit
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/algo-tape/internal/pluck"
	"github.com/cwbudde/algo-tape/param"
	"github.com/cwbudde/algo-tape/tape"
)

func main() {
	rate := flag.Int("rate", 44100, "sample rate in Hz")
	bpm := flag.Float64("bpm", 120, "tempo for synced delay times")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tapeecho [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test pattern through the tape echo. Keys adjust the\n")
		fmt.Fprintf(os.Stderr, "engine live: t/T f/F m/M w/W g/G n/N c/C nudge parameters,\n")
		fmt.Fprintf(os.Stderr, "s b x toggle modes, q quits.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*rate, *bpm); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(rate int, bpm float64) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	engine, err := tape.New(float64(rate))
	if err != nil {
		return err
	}
	engine.SetTempo(bpm)
	engine.SetDisplayOpen(true)

	source, err := pluck.NewSequencer(float64(rate))
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	// oto pulls from the renderer on its own goroutine; that goroutine
	// owns Process. Keys below only store parameter targets.
	player := ctx.NewPlayer(&renderer{engine: engine, source: source})
	player.Play()
	defer player.Close()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	stop := make(chan struct{})
	defer close(stop)
	go printStatus(engine, stop)

	fmt.Print("tapeecho: q quits, t/T f/F m/M w/W g/G n/N c/C nudge, s b x toggle\r\n")

	key := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(key); err != nil {
			return err
		}
		if handleKey(engine.Params(), key[0]) {
			fmt.Print("\r\n")
			return nil
		}
	}
}

// handleKey applies one key press and reports whether to quit.
func handleKey(p *tape.Params, key byte) bool {
	switch key {
	case 'q', 3: // ctrl-C
		return true
	case 't':
		nudge(p.TimeMs, -25)
	case 'T':
		nudge(p.TimeMs, 25)
	case 'f':
		nudge(p.Feedback, -0.05)
	case 'F':
		nudge(p.Feedback, 0.05)
	case 'm':
		nudge(p.Mix, -0.05)
	case 'M':
		nudge(p.Mix, 0.05)
	case 'w':
		nudge(p.Width, -0.1)
	case 'W':
		nudge(p.Width, 0.1)
	case 'g':
		nudge(p.Gain, -0.5)
	case 'G':
		nudge(p.Gain, 0.5)
	case 'n':
		nudge(p.Noise, -0.1)
	case 'N':
		nudge(p.Noise, 0.1)
	case 'c':
		nudge(p.Crackle, -0.1)
	case 'C':
		nudge(p.Crackle, 0.1)
	case 's':
		p.Sync.Store(!p.Sync.Load())
	case 'b':
		p.Broken.Store(!p.Broken.Load())
	case 'x':
		p.DistortionOnly.Store(!p.DistortionOnly.Load())
	}
	return false
}

func nudge(p *param.Float, delta float32) {
	p.Store(p.Target() + delta)
}

func printStatus(e *tape.Engine, stop <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p := e.Params()
			l, r := e.PeakLevels()
			fmt.Printf("\rL %s R %s  time %4.0f ms  fb %.2f  mix %.2f  width %.2f  gain %4.1f  %-22s",
				bar(l), bar(r),
				p.TimeMs.Target(), p.Feedback.Target(), p.Mix.Target(),
				p.Width.Target(), p.Gain.Target(), modes(p))
		}
	}
}

func bar(level float32) string {
	const width = 10
	lit := int(level * width)
	if lit > width {
		lit = width
	}
	cells := make([]byte, width)
	for i := range cells {
		if i < lit {
			cells[i] = '#'
		} else {
			cells[i] = '-'
		}
	}
	return string(cells)
}

func modes(p *tape.Params) string {
	s := "free"
	if p.Sync.Load() {
		s = "sync"
	}
	if p.Broken.Load() {
		s += " broken"
	}
	if p.DistortionOnly.Load() {
		s += " tape-only"
	}
	return s
}

const bytesPerFrame = 8 // two little-endian float32 channels

// renderer satisfies io.Reader for oto. Each Read renders the pattern
// through the engine and interleaves the result as float32 LE stereo.
type renderer struct {
	engine *tape.Engine
	source *pluck.Sequencer
	left   []float32
	right  []float32
}

func (r *renderer) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.left) < frames {
		r.left = make([]float32, frames)
		r.right = make([]float32, frames)
	}
	left := r.left[:frames]
	right := r.right[:frames]

	for i := range left {
		s := r.source.Next()
		left[i] = s
		right[i] = s
	}
	r.engine.Process(left, right)

	for i := range left {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(right[i]))
	}
	return frames * bytesPerFrame, nil
}
