package music

import (
	"math"
	"strings"
)

// DefaultKey is the root used when a key name is not in the table.
const DefaultKey = "C"

// rootHz maps note names to equal-tempered root frequencies near C3.
var rootHz = map[string]float64{
	"C":  130.81,
	"C#": 138.59,
	"D":  146.83,
	"D#": 155.56,
	"E":  164.81,
	"F":  174.61,
	"F#": 185.00,
	"G":  196.00,
	"G#": 207.65,
	"A":  220.00,
	"A#": 233.08,
	"B":  246.94,
}

// scaleIntervals holds the semitone offsets for the scales this engine
// voices directly. Anything else falls back to major.
var scaleIntervals = map[Scale][7]int{
	ScaleMajor: {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor: {0, 2, 3, 5, 7, 8, 10},
}

// RootFrequency returns the root frequency for a key name. Minor-key
// spellings like "Am" resolve to their root note; unknown names fall back
// to DefaultKey.
func RootFrequency(key string) float64 {
	name := strings.TrimSuffix(strings.TrimSpace(key), "m")
	if hz, ok := rootHz[name]; ok {
		return hz
	}
	return rootHz[DefaultKey]
}

// FrequenciesFor returns the seven scale-degree frequencies for a key and
// scale type. It never fails: unknown keys use the default root and
// unknown scale types use major intervals.
func FrequenciesFor(key string, scale Scale) [7]float64 {
	root := RootFrequency(key)
	intervals, ok := scaleIntervals[scale]
	if !ok {
		intervals = scaleIntervals[ScaleMajor]
	}

	var freqs [7]float64
	for i, semi := range intervals {
		freqs[i] = root * math.Pow(2, float64(semi)/12)
	}
	return freqs
}
