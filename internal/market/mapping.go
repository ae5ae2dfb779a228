package market

import (
	"fmt"
	"math"
	"strings"

	"github.com/sonifex/marketwave/internal/music"
)

// MapParams deterministically maps market features to musical control
// parameters. Volatility drives tempo, the trend picks the scale,
// price change sets brightness, and volume level sets drum density.
func MapParams(h History, a Analysis, presetName string) music.Params {
	preset := PresetFor(presetName)

	tempo := 90 + h.Volatility*5 + float64(preset.TempoShift)
	tempo = math.Max(60, math.Min(180, tempo))

	scale := music.ScaleMinor
	if a.Trend.Direction == music.TrendRising {
		scale = music.ScaleMajor
	}

	brightness := 0.5 + h.TotalChangePercent/20
	brightness = math.Max(0.2, math.Min(0.9, brightness))

	return music.Params{
		Tempo:          int(tempo),
		Scale:          scale,
		Key:            music.DefaultKey,
		FilterCutoff:   math.Min(0.8, h.Volatility/10),
		Brightness:     brightness,
		DrumDensity:    a.Volume.RelativeLevel,
		Intensity:      math.Abs(a.Momentum),
		EnergyScore:    music.Clamp01(h.Volatility/10 + math.Abs(a.Momentum)),
		TrendDirection: a.Trend.Direction,
		TrendStrength:  a.Trend.Strength,
	}.Normalized()
}

// Explanation builds the human-readable story for a rendered moment.
func Explanation(h History, a Analysis, p music.Params, presetName string) string {
	words := strings.Split(PresetFor(presetName).Name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	djName := strings.Join(words, " ")

	parts := []string{
		fmt.Sprintf("The %s DJ detected %s trading at $%.2f", djName, h.Instrument, h.CurrentPrice),
	}

	if math.Abs(h.TotalChangePercent) > 1 {
		parts = append(parts, fmt.Sprintf("with a %.2f%% %s movement", math.Abs(h.TotalChangePercent), a.Trend.Direction))
	} else {
		parts = append(parts, "with relatively stable pricing")
	}

	parts = append(parts, fmt.Sprintf("Volatility of %.2f%% drove the tempo to %d BPM", h.Volatility, p.Tempo))
	parts = append(parts, fmt.Sprintf("The %s trend inspired a %s scale with %s as the root", a.Trend.Direction, p.Scale, p.Key))

	if a.Volume.RelativeLevel > 0.7 {
		parts = append(parts, "High trading volume translated to dense, energetic percussion")
	} else if a.Volume.RelativeLevel < 0.4 {
		parts = append(parts, "Lower volume created a more sparse, atmospheric rhythm")
	}

	if p.Brightness > 0.7 {
		parts = append(parts, "Bright, uplifting synth tones reflect positive momentum")
	} else if p.Brightness < 0.4 {
		parts = append(parts, "Darker, filtered textures mirror the cautious market mood")
	}

	return strings.Join(parts, ". ") + "."
}
