// Package synthesis selects how a moment's audio gets made: a remote
// text-to-music API when one is configured and reachable, with the local
// procedural engine as the unconditional fallback.
package synthesis

import (
	"context"

	"github.com/sonifex/marketwave/internal/music"
)

// Request carries everything a provider needs for one generation.
type Request struct {
	Params       music.Params
	Instrument   string
	Preset       string
	Duration     int       // seconds
	Seed         uint64    // drives the local engine's noise sources
	PriceSamples []float64 // recent prices, quoted in the remote prompt
}

// Result is a finished clip. Format is "wav" for local renders and
// whatever the remote service returned otherwise; only WAV results can
// be decoded for waveform extraction.
type Result struct {
	Audio       []byte
	Format      string
	ContentType string
	Provider    string
}

// Inspectable reports whether the audio bytes can be decoded as PCM.
func (r *Result) Inspectable() bool {
	return r.Format == "wav"
}

// Provider turns a request into audio. Implementations must be safe for
// concurrent use.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Result, error)
}
