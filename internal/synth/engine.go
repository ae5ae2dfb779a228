package synth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sonifex/marketwave/internal/music"
)

const (
	DefaultSampleRate = 44100
	Channels          = 2
	DefaultDuration   = 8 * time.Second

	// DefaultLoopBlend is the length of the seam crossfade that makes
	// the rendered clip loop without a click.
	DefaultLoopBlend = 20 * time.Millisecond
)

// Engine renders a fixed-duration stereo clip from musical control
// parameters. It holds no mutable state: renders are pure functions of
// (params, duration, seed), so one engine value is safe to share across
// concurrent renders.
type Engine struct {
	sampleRate int
	loopBlend  time.Duration
}

// NewEngine creates a render engine. A zero sampleRate selects
// DefaultSampleRate; a negative loopBlend selects DefaultLoopBlend and
// zero disables the seam blend.
func NewEngine(sampleRate int, loopBlend time.Duration) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if loopBlend < 0 {
		loopBlend = DefaultLoopBlend
	}
	return &Engine{sampleRate: sampleRate, loopBlend: loopBlend}
}

// SampleRate returns the engine's output sample rate.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Render synthesizes duration seconds of interleaved stereo float
// samples. The same params, duration, and rng seed always produce the
// same buffer. Only tempo and duration are validated; every other
// parameter degrades to a documented default instead of failing.
func (e *Engine) Render(p music.Params, duration float64, rng *rand.Rand) ([]float64, error) {
	if p.Tempo <= 0 {
		return nil, fmt.Errorf("render: tempo must be positive, got %d", p.Tempo)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("render: duration must be positive, got %v", duration)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}

	p = p.Normalized()
	rc := newRenderContext(p, rng)
	bank := newVoiceBank(rc)

	numSamples := int(duration * float64(e.sampleRate))
	buf := make([]float64, numSamples*Channels)

	dt := 1 / float64(e.sampleRate)
	frame := func(t float64) (float64, float64) {
		c := music.ClockAt(t, p.Tempo)

		var sum float64
		for _, v := range bank {
			if v.Active(c) {
				sum += v.Amplitude(t, c)
			}
		}
		return SpreadStereo(Saturate(sum), t)
	}

	for i := 0; i < numSamples; i++ {
		left, right := frame(float64(i) * dt)
		buf[i*2] = left
		buf[i*2+1] = right
	}

	e.blendLoopSeam(buf, numSamples, dt, frame)
	return buf, nil
}

// blendLoopSeam renders a short continuation of the signal past the
// clip's end and crossfades it into the head. Frame 0 then picks up
// exactly where frame numSamples-1 left off, so a looping player sees
// no discontinuity at the wrap.
func (e *Engine) blendLoopSeam(buf []float64, numSamples int, dt float64, frame func(float64) (float64, float64)) {
	blend := int(e.loopBlend.Seconds() * float64(e.sampleRate))
	if blend <= 0 {
		return
	}
	if blend > numSamples/2 {
		blend = numSamples / 2
	}

	for i := 0; i < blend; i++ {
		g := Smoothstep(float64(i) / float64(blend))
		extLeft, extRight := frame(float64(numSamples+i) * dt)
		buf[i*2] = buf[i*2]*g + extLeft*(1-g)
		buf[i*2+1] = buf[i*2+1]*g + extRight*(1-g)
	}
}
