package market

// Preset is a DJ style: descriptive material for prompts and
// explanations plus a tempo bias for the deterministic mapping.
type Preset struct {
	Name        string
	Style       string
	Vibe        string
	Drums       string
	Bass        string
	Instruments string
	TempoShift  int // BPM added to the volatility-derived tempo
}

// DefaultPreset is used for unknown preset names.
const DefaultPreset = "neon-house"

var presets = map[string]Preset{
	"neon-house": {
		Name:        "neon-house",
		Style:       "high-energy neon house",
		Vibe:        "euphoric, electric, vibrant",
		Drums:       "punchy four-on-the-floor kick drum, crisp clap/snare on 2 and 4, shimmering open hi-hats",
		Bass:        "deep sub bass with sidechained synth bass, pumping groove",
		Instruments: "bright supersaw leads, sparkling arpeggios, euphoric pads",
		TempoShift:  20,
	},
	"lo-fi-drift": {
		Name:        "lo-fi-drift",
		Style:       "lo-fi chill hop",
		Vibe:        "relaxed, dreamy, nostalgic",
		Drums:       "dusty boom-bap kick, lazy snare with vinyl crackle, soft closed hi-hats",
		Bass:        "warm mellow bass with subtle movement",
		Instruments: "Rhodes keys, jazzy chords, ambient tape-saturated pads",
		TempoShift:  -20,
	},
	"industrial-tech": {
		Name:        "industrial-tech",
		Style:       "dark industrial techno",
		Vibe:        "intense, mechanical, driving",
		Drums:       "distorted pounding kick drum, metallic snare hits, relentless hi-hats",
		Bass:        "aggressive acid bass, rumbling sub frequencies",
		Instruments: "harsh modular synths, dark atmospheric textures, industrial stabs",
		TempoShift:  0,
	},
}

// PresetFor returns the preset for a name, falling back to DefaultPreset.
func PresetFor(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	return presets[DefaultPreset]
}

// IsValidPreset checks whether the name is a known DJ preset.
func IsValidPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// PresetNames returns all known preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
