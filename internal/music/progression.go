package music

// Progressions and arpeggio patterns are scale-degree offsets into the
// seven-note frequency table. Selection is a total table over trend
// direction and scale: every trend has a major and a minor progression
// (differing by one degree to keep the tonal color), and one arpeggio
// pattern shared across scales.

type progressionKey struct {
	trend Trend
	scale Scale
}

// progressions maps trend x scale to a 4-bar chord-root sequence.
// Rising climbs, falling descends, stable cycles.
var progressions = map[progressionKey][4]int{
	{TrendRising, ScaleMajor}:  {0, 3, 4, 5},
	{TrendRising, ScaleMinor}:  {0, 3, 4, 6},
	{TrendFalling, ScaleMajor}: {5, 4, 3, 0},
	{TrendFalling, ScaleMinor}: {6, 4, 3, 0},
	{TrendStable, ScaleMajor}:  {0, 5, 3, 4},
	{TrendStable, ScaleMinor}:  {0, 5, 2, 4},
}

// arpPatterns maps trend to an 8-step arpeggio degree sequence.
var arpPatterns = map[Trend][8]int{
	TrendRising:  {0, 2, 4, 6, 2, 4, 6, 4},
	TrendFalling: {6, 4, 2, 0, 4, 2, 0, 2},
	TrendStable:  {0, 4, 2, 5, 0, 4, 2, 5},
}

// ProgressionFor returns the 4-bar chord-root degrees for a trend and
// scale. Unrecognized trends resolve to stable and non-minor scales to
// the major variant, so the lookup is total.
func ProgressionFor(trend Trend, scale Scale) [4]int {
	if scale != ScaleMinor {
		scale = ScaleMajor
	}
	if p, ok := progressions[progressionKey{trend, scale}]; ok {
		return p
	}
	return progressions[progressionKey{TrendStable, scale}]
}

// ArpPatternFor returns the 8-step arpeggio degrees for a trend.
func ArpPatternFor(trend Trend) [8]int {
	if a, ok := arpPatterns[trend]; ok {
		return a
	}
	return arpPatterns[TrendStable]
}
