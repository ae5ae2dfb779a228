package music

import "math"

// BeatsPerBar is fixed 4/4 time throughout the engine.
const BeatsPerBar = 4

// Clock is the musical position at one sample time, shared by all voices.
type Clock struct {
	BeatIndex int     // beats elapsed since t=0
	BeatPhase float64 // position within the current beat, [0, 1)
	BarIndex  int     // current bar within the 4-bar progression, 0-3
	BeatInBar int     // beat within the current bar, 0-3
}

// ClockAt derives the clock state for sample time t (seconds) at the
// given tempo.
func ClockAt(t float64, tempo int) Clock {
	bps := float64(tempo) / 60
	beats := t * bps
	beatIndex := int(math.Floor(beats))
	return Clock{
		BeatIndex: beatIndex,
		BeatPhase: beats - float64(beatIndex),
		BarIndex:  (beatIndex / BeatsPerBar) % BeatsPerBar,
		BeatInBar: beatIndex % BeatsPerBar,
	}
}

// BarPhase is the position within the current bar, [0, 1).
func (c Clock) BarPhase() float64 {
	return (float64(c.BeatInBar) + c.BeatPhase) / BeatsPerBar
}
