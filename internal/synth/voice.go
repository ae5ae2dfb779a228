package synth

import (
	"math"
	"math/rand/v2"

	"github.com/sonifex/marketwave/internal/music"
)

// Voice is one sound generator in the bank. Active reports whether the
// voice produces sound at the given clock position; Amplitude evaluates
// it at sample time t. A voice holds no per-sample state: everything is
// derived from (t, clock) and the shared render context, so a render is a
// pure function of params, duration, and seed.
type Voice interface {
	Active(c music.Clock) bool
	Amplitude(t float64, c music.Clock) float64
}

// renderContext carries the per-render musical material shared by all
// voices. It replaces any notion of process-wide "current" state: one
// context per render, threaded explicitly.
type renderContext struct {
	params music.Params
	freqs  [7]float64
	prog   [4]int
	arp    [8]int
	bps    float64
	rng    *rand.Rand
}

func newRenderContext(p music.Params, rng *rand.Rand) *renderContext {
	return &renderContext{
		params: p,
		freqs:  music.FrequenciesFor(p.Key, p.Scale),
		prog:   music.ProgressionFor(p.TrendDirection, p.Scale),
		arp:    music.ArpPatternFor(p.TrendDirection),
		bps:    float64(p.Tempo) / 60,
		rng:    rng,
	}
}

// chordRoot returns the chord-root frequency for the current bar.
func (rc *renderContext) chordRoot(c music.Clock) float64 {
	return rc.freqs[rc.prog[c.BarIndex]%7]
}

// arpNote returns the arpeggio-pattern frequency for step idx.
func (rc *renderContext) arpNote(idx int) float64 {
	return rc.freqs[rc.arp[idx%8]%7]
}

// noise is a white-noise sample in [-1, 1) from the injected source.
func (rc *renderContext) noise() float64 {
	return rc.rng.Float64()*2 - 1
}

const twoPi = 2 * math.Pi

// saw is a naive sawtooth in [-1, 1) for phase x in cycles.
func saw(x float64) float64 {
	return 2*(x-math.Floor(x)) - 1
}

// square is a naive square wave for phase x in cycles.
func square(x float64) float64 {
	if x-math.Floor(x) < 0.5 {
		return 1
	}
	return -1
}

// --- Kick ---

// kick fires once per beat: an exponentially decaying sine whose pitch
// sweeps from ~150 Hz down to a 40 Hz floor.
type kick struct{ rc *renderContext }

func (v kick) Active(c music.Clock) bool {
	return c.BeatPhase < 0.15 && v.rc.params.DrumDensity > 0
}

func (v kick) Amplitude(t float64, c music.Clock) float64 {
	env := math.Exp(-c.BeatPhase * 30)
	pitch := 150*math.Exp(-c.BeatPhase*40) + 40
	tb := c.BeatPhase / v.rc.bps // seconds into the beat
	return math.Sin(twoPi*pitch*tb) * env * v.rc.params.DrumDensity
}

// --- Snare ---

// snare hits beats 2 and 4: broadband noise mixed with a 200 Hz tone.
type snare struct{ rc *renderContext }

func (v snare) Active(c music.Clock) bool {
	return (c.BeatInBar == 1 || c.BeatInBar == 3) && c.BeatPhase < 0.1 && v.rc.params.DrumDensity > 0
}

func (v snare) Amplitude(t float64, c music.Clock) float64 {
	env := math.Exp(-c.BeatPhase * 25)
	tb := c.BeatPhase / v.rc.bps
	tone := math.Sin(twoPi * 200 * tb)
	return (v.rc.noise()*0.7 + tone*0.3) * env * v.rc.params.DrumDensity
}

// --- Hi-hat ---

// hihat plays short noise bursts on 16th notes when energy is high,
// 8th notes otherwise.
type hihat struct{ rc *renderContext }

func (v hihat) subdivisions() float64 {
	if v.rc.params.EnergyScore > 0.6 {
		return 4 // 16ths
	}
	return 2 // 8ths
}

func (v hihat) Active(c music.Clock) bool {
	p := v.rc.params
	if p.DrumDensity <= 0 || p.Brightness <= 0 {
		return false
	}
	pos := c.BeatPhase * v.subdivisions()
	return pos-math.Floor(pos) < 0.5
}

func (v hihat) Amplitude(t float64, c music.Clock) float64 {
	pos := c.BeatPhase * v.subdivisions()
	phase := pos - math.Floor(pos)
	env := math.Exp(-phase * 80)
	return v.rc.noise() * env * v.rc.params.DrumDensity * v.rc.params.Brightness * 0.6
}

// --- Bass ---

// bass holds one note per bar at the chord root an octave down: sawtooth
// plus a sub-sine at half the bass frequency, decaying across the bar.
type bass struct{ rc *renderContext }

func (v bass) Active(c music.Clock) bool { return true }

func (v bass) Amplitude(t float64, c music.Clock) float64 {
	freq := v.rc.chordRoot(c) / 2
	barPhase := c.BarPhase()

	env := 0.75
	if barPhase < 0.5 {
		env = 1 - 0.5*barPhase
	}

	sample := saw(t*freq)*0.5 + math.Sin(twoPi*freq/2*t)*0.5
	return sample * env * (0.5 + 0.5*v.rc.params.Intensity) * 0.4
}

// --- Pad ---

// padDetune spreads each triad note across five oscillators at +-0.4%.
var padDetune = [5]float64{0.996, 0.998, 1.0, 1.002, 1.004}

// pad sustains a detuned triad two octaves up, amplitude-swept by a slow
// sine on wall-clock time (deliberately not tempo-synced) combined with
// the filter cutoff and brightness.
type pad struct{ rc *renderContext }

func (v pad) Active(c music.Clock) bool {
	return v.rc.params.FilterCutoff > 0 && v.rc.params.Brightness > 0
}

func (v pad) Amplitude(t float64, c music.Clock) float64 {
	root := v.rc.prog[c.BarIndex]
	var sum float64
	for _, offset := range [3]int{0, 2, 4} {
		freq := v.rc.freqs[(root+offset)%7] * 4
		for _, d := range padDetune {
			sum += math.Sin(twoPi * freq * d * t)
		}
	}
	sum /= 15

	sweep := 0.5 + 0.5*math.Sin(t*0.7)
	return sum * sweep * v.rc.params.FilterCutoff * v.rc.params.Brightness * 0.5
}

// --- Pluck ---

// pluck plays the arpeggio pattern on 8th notes two octaves up as a
// three-harmonic additive tone with a fast pluck decay.
type pluck struct{ rc *renderContext }

func (v pluck) Active(c music.Clock) bool { return v.rc.params.Brightness > 0 }

func (v pluck) Amplitude(t float64, c music.Clock) float64 {
	pos := t * v.rc.bps * 2 // 8th-note grid
	idx := int(math.Floor(pos))
	phase := pos - math.Floor(pos)

	freq := v.rc.arpNote(idx) * 4
	env := math.Exp(-phase * 12)

	sample := math.Sin(twoPi*freq*t) + 0.5*math.Sin(twoPi*2*freq*t) + 0.25*math.Sin(twoPi*3*freq*t)
	return sample * env * v.rc.params.Brightness * 0.25
}

// --- Bell ---

// bellRatios is an inharmonic partial stack for a bell-like timbre.
var bellRatios = [3]float64{1, 2.4, 5.95}

// bell rings on every 3rd 8th-note subdivision, scaled by brightness
// squared so bright moments get disproportionately more sparkle.
type bell struct{ rc *renderContext }

func (v bell) Active(c music.Clock) bool { return v.rc.params.Brightness > 0 }

func (v bell) Amplitude(t float64, c music.Clock) float64 {
	pos := t * v.rc.bps * 2
	idx := int(math.Floor(pos))
	if idx%3 != 0 {
		return 0
	}
	phase := pos - math.Floor(pos)

	freq := v.rc.arpNote(idx) * 8
	env := math.Exp(-phase * 20)

	var sum float64
	for i, r := range bellRatios {
		sum += math.Sin(twoPi*freq*r*t) / float64(i+1)
	}

	b := v.rc.params.Brightness
	return sum * env * b * b * 0.15
}

// --- Arpeggio lead ---

// arpLead runs the pattern as a filtered sawtooth two octaves up, on
// 16ths above 120 BPM and 8ths below.
type arpLead struct{ rc *renderContext }

func (v arpLead) subdivisions() float64 {
	if v.rc.params.Tempo > 120 {
		return 4
	}
	return 2
}

func (v arpLead) Active(c music.Clock) bool { return v.rc.params.EnergyScore > 0 }

func (v arpLead) Amplitude(t float64, c music.Clock) float64 {
	pos := t * v.rc.bps * v.subdivisions()
	idx := int(math.Floor(pos))
	phase := pos - math.Floor(pos)

	freq := v.rc.arpNote(idx) * 4
	env := math.Exp(-phase * 4)

	// Crude lowpass: blend the raw saw toward its fundamental as the
	// cutoff closes.
	cutoff := v.rc.params.FilterCutoff
	sample := saw(t*freq)*cutoff + math.Sin(twoPi*freq*t)*(1-cutoff)

	return sample * env * (0.3 + 0.4*v.rc.params.EnergyScore) * 0.3
}

// --- Accent ---

// accent fires a resonant square stab on odd beats when intensity is
// above half.
type accent struct{ rc *renderContext }

func (v accent) Active(c music.Clock) bool {
	return c.BeatInBar%2 == 1 && v.rc.params.Intensity > 0.5 && c.BeatPhase < 0.2
}

func (v accent) Amplitude(t float64, c music.Clock) float64 {
	freq := v.rc.chordRoot(c) * 2
	env := math.Exp(-c.BeatPhase * 15)

	// Square with a ringing octave partial for the resonant edge
	sample := square(t*freq)*0.7 + math.Sin(twoPi*freq*2*t)*0.3
	return sample * env * v.rc.params.Intensity * 0.25
}

// --- Formant ---

// formantFreqs approximate the first two formants of an "ah" vowel.
var formantFreqs = [2]float64{730, 1090}

// formant is a single vocal-chop style hit at bar 2, beat 0: a carrier
// ring-modulated by two formant sines.
type formant struct{ rc *renderContext }

func (v formant) Active(c music.Clock) bool {
	return c.BarIndex == 1 && c.BeatInBar == 0 && c.BeatPhase < 0.3 && v.rc.params.Brightness > 0
}

func (v formant) Amplitude(t float64, c music.Clock) float64 {
	env := math.Exp(-c.BeatPhase * 8)
	tb := c.BeatPhase / v.rc.bps

	carrier := math.Sin(twoPi * v.rc.chordRoot(c) * t)
	vowel := 0.6*math.Sin(twoPi*formantFreqs[0]*tb) + 0.4*math.Sin(twoPi*formantFreqs[1]*tb)
	return carrier * vowel * env * v.rc.params.Brightness * 0.3
}

// newVoiceBank builds the fixed ordered voice collection for one render.
func newVoiceBank(rc *renderContext) []Voice {
	return []Voice{
		kick{rc},
		snare{rc},
		hihat{rc},
		bass{rc},
		pad{rc},
		pluck{rc},
		bell{rc},
		arpLead{rc},
		accent{rc},
		formant{rc},
	}
}
