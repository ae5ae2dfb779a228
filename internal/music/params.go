package music

// Scale names a scale type. Only major and minor have their own interval
// sets; pentatonic and chromatic are accepted and voiced as major.
type Scale string

const (
	ScaleMajor      Scale = "major"
	ScaleMinor      Scale = "minor"
	ScalePentatonic Scale = "pentatonic"
	ScaleChromatic  Scale = "chromatic"
)

// Trend is the market trend direction driving progression selection.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Params are the musical control parameters for one render. All float
// fields are normalized 0-1; callers should pass them through Normalized
// before handing them to the engine.
type Params struct {
	Tempo          int     `json:"tempo"` // BPM, 60-180
	Scale          Scale   `json:"scale"`
	Key            string  `json:"key"`
	FilterCutoff   float64 `json:"filterCutoff"`
	Brightness     float64 `json:"brightness"`
	DrumDensity    float64 `json:"drumDensity"`
	Intensity      float64 `json:"intensity"`
	EnergyScore    float64 `json:"energyScore"`
	TrendDirection Trend   `json:"trendDirection"`
	TrendStrength  float64 `json:"trendStrength"`
}

// Normalized returns a copy with every 0-1 field clamped into range and
// the trend direction defaulted to stable when unrecognized. Tempo is left
// alone: a non-positive tempo is a caller bug and is rejected by the
// engine rather than silently patched.
func (p Params) Normalized() Params {
	p.FilterCutoff = Clamp01(p.FilterCutoff)
	p.Brightness = Clamp01(p.Brightness)
	p.DrumDensity = Clamp01(p.DrumDensity)
	p.Intensity = Clamp01(p.Intensity)
	p.EnergyScore = Clamp01(p.EnergyScore)
	p.TrendStrength = Clamp01(p.TrendStrength)
	switch p.TrendDirection {
	case TrendRising, TrendFalling, TrendStable:
	default:
		p.TrendDirection = TrendStable
	}
	return p
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
