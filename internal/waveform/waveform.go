// Package waveform derives the compact amplitude envelope the UI draws
// under a playing moment, either from decoded audio or approximated
// straight from the musical parameters.
package waveform

import (
	"math"
	"math/rand/v2"

	"github.com/sonifex/marketwave/internal/music"
)

// DefaultResolution is the peak count used when none is configured.
const DefaultResolution = 200

// Data is the visualization payload: a fixed-length peak sequence in
// [0,1] plus the clip's timing info.
type Data struct {
	Peaks      []float64 `json:"peaks"`
	Duration   float64   `json:"duration"`
	SampleRate int       `json:"sampleRate"`
}

// Extractor computes waveform peaks at a fixed resolution. The peak
// count never varies with clip duration.
type Extractor struct {
	resolution int
}

// NewExtractor creates an extractor. Non-positive resolution selects
// DefaultResolution.
func NewExtractor(resolution int) *Extractor {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &Extractor{resolution: resolution}
}

// Resolution returns the configured peak count.
func (e *Extractor) Resolution() int { return e.resolution }

// FromPCM buckets the decoded samples into resolution equal slices and
// takes the max absolute magnitude of each, normalized to [0,1].
func (e *Extractor) FromPCM(samples []int16, sampleRate, channels int) Data {
	peaks := make([]float64, e.resolution)

	if len(samples) > 0 {
		bucket := len(samples) / e.resolution
		if bucket < 1 {
			bucket = 1
		}
		for i := range peaks {
			start := i * bucket
			if start >= len(samples) {
				break
			}
			end := start + bucket
			if end > len(samples) {
				end = len(samples)
			}

			var peak float64
			for _, s := range samples[start:end] {
				if v := math.Abs(float64(s)); v > peak {
					peak = v
				}
			}
			peaks[i] = music.Clamp01(peak / 32767)
		}
	}

	frames := len(samples)
	if channels > 0 {
		frames /= channels
	}
	var duration float64
	if sampleRate > 0 {
		duration = float64(frames) / float64(sampleRate)
	}

	return Data{Peaks: peaks, Duration: duration, SampleRate: sampleRate}
}

// Approximate synthesizes a musically plausible envelope directly from
// the parameters, for results whose audio bytes cannot be inspected
// (e.g. a remote provider returned MP3). Beat pulses scale with drum
// density, a slow drift shapes the base level, and a small ripple scales
// with brightness.
func (e *Extractor) Approximate(p music.Params, duration float64, sampleRate int, rng *rand.Rand) Data {
	p = p.Normalized()
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}

	bps := float64(p.Tempo) / 60
	peaks := make([]float64, e.resolution)
	for i := range peaks {
		t := duration * float64(i) / float64(e.resolution)

		base := 0.3 + 0.1*math.Sin(t*0.5)

		beatPos := t * bps
		beatPhase := beatPos - math.Floor(beatPos)
		pulse := math.Exp(-beatPhase*8) * 0.4 * p.DrumDensity

		ripple := (rng.Float64() - 0.5) * 0.1 * p.Brightness

		peaks[i] = music.Clamp01(base + pulse + ripple)
	}

	return Data{Peaks: peaks, Duration: duration, SampleRate: sampleRate}
}
