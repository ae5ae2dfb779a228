package synth

import "math"

// masterGain and the tanh drive together soft-clip the voice sum while
// keeping perceived loudness.
const (
	saturationDrive = 1.5
	saturationTrim  = 0.8
	widthDepth      = 0.1
	widthRate       = 0.5 // rad/s of the slow stereo drift
)

// Saturate soft-clips a summed sample with a tanh curve.
func Saturate(s float64) float64 {
	return math.Tanh(s*saturationDrive) * saturationTrim
}

// SpreadStereo applies the slow inter-channel gain drift that widens the
// master signal. Returns left and right samples for time t.
func SpreadStereo(s, t float64) (left, right float64) {
	w := math.Sin(t*widthRate) * widthDepth
	return s * (1 + w), s * (1 - w)
}

// Smoothstep returns the smoothstep interpolation 3t^2 - 2t^3 for t
// clamped to [0,1]. Used for the loop-seam blend.
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
