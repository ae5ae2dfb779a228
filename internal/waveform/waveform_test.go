package waveform

import (
	"math/rand/v2"
	"testing"

	"github.com/sonifex/marketwave/internal/music"
)

func testParams() music.Params {
	return music.Params{
		Tempo:          128,
		Scale:          music.ScaleMajor,
		Key:            "C",
		Brightness:     0.8,
		DrumDensity:    0.7,
		Intensity:      0.75,
		EnergyScore:    0.8,
		FilterCutoff:   0.6,
		TrendDirection: music.TrendRising,
	}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

// --- FromPCM ---

func TestFromPCMResolutionFixed(t *testing.T) {
	e := NewExtractor(200)
	for _, n := range []int{0, 50, 199, 200, 1000, 44100 * 2} {
		d := e.FromPCM(make([]int16, n), 44100, 2)
		if len(d.Peaks) != 200 {
			t.Errorf("%d samples: peaks length = %d, want 200", n, len(d.Peaks))
		}
	}
}

func TestFromPCMBucketMax(t *testing.T) {
	e := NewExtractor(2)
	samples := []int16{100, -16384, 50, 0, 32767, -5}
	d := e.FromPCM(samples, 44100, 1)

	if got, want := d.Peaks[0], 16384.0/32767; got != want {
		t.Errorf("bucket 0 peak = %v, want %v", got, want)
	}
	if d.Peaks[1] != 1 {
		t.Errorf("bucket 1 peak = %v, want 1 (full-scale sample)", d.Peaks[1])
	}
}

func TestFromPCMDuration(t *testing.T) {
	e := NewExtractor(10)
	d := e.FromPCM(make([]int16, 44100*2), 44100, 2) // 1s stereo
	if d.Duration != 1 {
		t.Errorf("duration = %v, want 1", d.Duration)
	}
	if d.SampleRate != 44100 {
		t.Errorf("sampleRate = %d, want 44100", d.SampleRate)
	}
}

func TestFromPCMPeaksInRange(t *testing.T) {
	e := NewExtractor(50)
	samples := make([]int16, 4096)
	r := seeded()
	for i := range samples {
		samples[i] = int16(r.IntN(65536) - 32768)
	}
	d := e.FromPCM(samples, 44100, 2)
	for i, p := range d.Peaks {
		if p < 0 || p > 1 {
			t.Errorf("peak %d = %v outside [0,1]", i, p)
		}
	}
}

func TestNewExtractorDefaultResolution(t *testing.T) {
	if got := NewExtractor(0).Resolution(); got != DefaultResolution {
		t.Errorf("resolution = %d, want %d", got, DefaultResolution)
	}
}

// --- Approximate ---

func TestApproximateResolutionAndRange(t *testing.T) {
	e := NewExtractor(200)
	for _, dur := range []float64{1, 8, 30} {
		d := e.Approximate(testParams(), dur, 44100, seeded())
		if len(d.Peaks) != 200 {
			t.Errorf("duration %v: peaks length = %d, want 200", dur, len(d.Peaks))
		}
		for i, p := range d.Peaks {
			if p < 0 || p > 1 {
				t.Errorf("duration %v: peak %d = %v outside [0,1]", dur, i, p)
			}
		}
		if d.Duration != dur {
			t.Errorf("duration field = %v, want %v", d.Duration, dur)
		}
	}
}

func TestApproximateDrumDensityDrivesPulsing(t *testing.T) {
	e := NewExtractor(200)

	flat := testParams()
	flat.DrumDensity = 0
	flat.Brightness = 0 // no ripple either, isolate the beat pulse
	pulsed := flat
	pulsed.DrumDensity = 1

	spread := func(d Data) float64 {
		lo, hi := 1.0, 0.0
		for _, p := range d.Peaks {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		return hi - lo
	}

	flatSpread := spread(e.Approximate(flat, 8, 44100, seeded()))
	pulsedSpread := spread(e.Approximate(pulsed, 8, 44100, seeded()))

	if pulsedSpread <= flatSpread {
		t.Errorf("drumDensity=1 spread %v should exceed drumDensity=0 spread %v", pulsedSpread, flatSpread)
	}
	// With no drums and no ripple only the slow drift remains
	if flatSpread > 0.25 {
		t.Errorf("drumDensity=0 envelope should be near flat, spread = %v", flatSpread)
	}
}

func TestApproximateDeterministicForSeed(t *testing.T) {
	e := NewExtractor(100)
	a := e.Approximate(testParams(), 8, 44100, rand.New(rand.NewPCG(7, 7)))
	b := e.Approximate(testParams(), 8, 44100, rand.New(rand.NewPCG(7, 7)))
	for i := range a.Peaks {
		if a.Peaks[i] != b.Peaks[i] {
			t.Fatalf("peak %d differs across identically seeded runs: %v vs %v", i, a.Peaks[i], b.Peaks[i])
		}
	}
}
