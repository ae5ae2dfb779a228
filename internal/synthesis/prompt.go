package synthesis

import (
	"fmt"
	"strings"

	"github.com/sonifex/marketwave/internal/market"
	"github.com/sonifex/marketwave/internal/music"
)

// BuildPrompt assembles the text prompt sent to the remote music API.
// The structure mirrors what the service responds best to: style and
// palette up front, the market data as inspiration rather than
// instruction, and hard looping constraints at the end.
func BuildPrompt(req Request) string {
	preset := market.PresetFor(req.Preset)
	p := req.Params

	scaleDesc := "dark minor"
	if p.Scale == music.ScaleMajor {
		scaleDesc = "uplifting major"
	}

	tempoDesc := "laid-back"
	switch {
	case p.Tempo >= 130:
		tempoDesc = "driving"
	case p.Tempo >= 100:
		tempoDesc = "mid-tempo"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create an original, studio-quality %s instrumental loop (%d seconds), seamless looping. ", preset.Style, req.Duration)
	fmt.Fprintf(&b, "A %s %d BPM track in %s scale, key of %s. ", tempoDesc, p.Tempo, scaleDesc, p.Key)
	fmt.Fprintf(&b, "Features %s, %s, and %s. Mood: %s.\n\n", preset.Drums, preset.Bass, preset.Instruments, preset.Vibe)

	fmt.Fprintf(&b, "Use the %s price data below as inspiration for the emotional arc, not literally: ", req.Instrument)
	b.WriteString("higher levels mean brighter, airier moments; fast changes mean higher intensity; ")
	fmt.Fprintf(&b, "the %s trend sets the mood.\n\n", p.TrendDirection)

	if len(req.PriceSamples) > 0 {
		samples := make([]string, len(req.PriceSamples))
		for i, v := range req.PriceSamples {
			samples[i] = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(&b, "%s price samples: [%s]\n\n", req.Instrument, strings.Join(samples, ", "))
	}

	b.WriteString("No vocals. No long reverb tail. End must match the start for seamless looping. Clean, modern production.")
	return b.String()
}
