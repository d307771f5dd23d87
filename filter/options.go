// SPDX-License-Identifier: EPL-2.0

package filter

import "math"

// Options are the four perceptual controls of a processing request.
type Options struct {
	// NoiseReduction in [0,1] moves the lowpass cutoff from 2 kHz to 4 kHz.
	NoiseReduction float64 `yaml:"noise_reduction"`
	// RemoveBackground raises the highpass cutoff from 20 Hz to 150 Hz.
	RemoveBackground bool `yaml:"remove_background"`
	// Gain in [0,2] is a linear factor.
	Gain float64 `yaml:"gain"`
	// Clarity in [0,1] maps to a 0..6 dB boost at 3 kHz.
	Clarity float64 `yaml:"clarity"`
}

// DefaultOptions leaves the signal untouched apart from the fixed
// highpass and lowpass stages.
func DefaultOptions() Options {
	return Options{Gain: 1}
}

// Clamp returns a copy with every field inside its domain. NaN falls back to
// the field's default.
func (o Options) Clamp() Options {
	o.NoiseReduction = clamp(o.NoiseReduction, 0, 1, 0)
	o.Gain = clamp(o.Gain, 0, 2, 1)
	o.Clarity = clamp(o.Clarity, 0, 1, 0)

	return o
}

func clamp(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}

	return math.Min(math.Max(v, lo), hi)
}
