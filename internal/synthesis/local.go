package synthesis

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sonifex/marketwave/internal/synth"
	"github.com/sonifex/marketwave/internal/wav"
)

// Local renders audio with the built-in procedural engine. It never
// depends on the network and always produces inspectable PCM.
type Local struct {
	engine *synth.Engine
}

// NewLocal creates a local provider around the given engine.
func NewLocal(engine *synth.Engine) *Local {
	return &Local{engine: engine}
}

// Name identifies this provider in logs and moment metadata.
func (l *Local) Name() string { return "local" }

// Generate renders the requested clip deterministically from the seed.
func (l *Local) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(req.Seed, req.Seed))
	samples, err := l.engine.Render(req.Params, float64(req.Duration), rng)
	if err != nil {
		return nil, fmt.Errorf("render audio: %w", err)
	}

	return &Result{
		Audio:       wav.Encode(samples, l.engine.SampleRate(), synth.Channels),
		Format:      "wav",
		ContentType: "audio/wav",
		Provider:    l.Name(),
	}, nil
}
