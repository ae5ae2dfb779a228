package market

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonifex/marketwave/internal/music"
)

func TestMapParamsRanges(t *testing.T) {
	h := historyFromPrices([]float64{100, 105, 98, 120, 130, 125})
	a, err := Analyze(h)
	require.NoError(t, err)

	for _, preset := range []string{"neon-house", "lo-fi-drift", "industrial-tech", "unknown"} {
		p := MapParams(h, a, preset)

		assert.GreaterOrEqual(t, p.Tempo, 60, preset)
		assert.LessOrEqual(t, p.Tempo, 180, preset)
		for name, v := range map[string]float64{
			"filterCutoff": p.FilterCutoff,
			"brightness":   p.Brightness,
			"drumDensity":  p.DrumDensity,
			"intensity":    p.Intensity,
			"energyScore":  p.EnergyScore,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s/%s", preset, name)
			assert.LessOrEqual(t, v, 1.0, "%s/%s", preset, name)
		}
		assert.Equal(t, music.DefaultKey, p.Key)
	}
}

func TestMapParamsScaleFollowsTrend(t *testing.T) {
	rising := historyFromPrices([]float64{100, 102, 104, 115, 118, 120})
	ra, err := Analyze(rising)
	require.NoError(t, err)
	assert.Equal(t, music.ScaleMajor, MapParams(rising, ra, DefaultPreset).Scale)

	falling := historyFromPrices([]float64{120, 118, 115, 104, 102, 100})
	fa, err := Analyze(falling)
	require.NoError(t, err)
	assert.Equal(t, music.ScaleMinor, MapParams(falling, fa, DefaultPreset).Scale)
}

func TestMapParamsPresetShiftsTempo(t *testing.T) {
	h := historyFromPrices([]float64{100, 101, 100, 101, 100, 101})
	a, err := Analyze(h)
	require.NoError(t, err)

	house := MapParams(h, a, "neon-house")
	lofi := MapParams(h, a, "lo-fi-drift")
	tech := MapParams(h, a, "industrial-tech")

	assert.Equal(t, 40, house.Tempo-lofi.Tempo, "presets are 40 BPM apart")
	assert.Greater(t, house.Tempo, tech.Tempo)
}

func TestPresetFallback(t *testing.T) {
	assert.Equal(t, DefaultPreset, PresetFor("does-not-exist").Name)
	assert.True(t, IsValidPreset("lo-fi-drift"))
	assert.False(t, IsValidPreset("speed-metal"))
	assert.Len(t, PresetNames(), 3)
}

func TestExplanationMentionsKeyFacts(t *testing.T) {
	h := historyFromPrices([]float64{100, 102, 104, 115, 118, 120})
	a, err := Analyze(h)
	require.NoError(t, err)
	p := MapParams(h, a, "neon-house")

	text := Explanation(h, a, p, "neon-house")

	assert.True(t, strings.HasSuffix(text, "."))
	assert.Contains(t, text, "BTC")
	assert.Contains(t, text, "Neon House")
	assert.Contains(t, text, "BPM")
	assert.Contains(t, text, string(a.Trend.Direction))
}

func TestInstrumentTable(t *testing.T) {
	assert.True(t, IsValidInstrument("BTC"))
	assert.True(t, IsValidInstrument("ETH"))
	assert.False(t, IsValidInstrument("DOGE"))
	assert.Len(t, Instruments(), 5)
}
