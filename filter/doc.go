// SPDX-License-Identifier: EPL-2.0

// Package filter turns the four perceptual cleanup controls into a cascade of
// second-order IIR sections and renders a PCM buffer through it.
//
// # Chain
//
// Compile always produces the same topology:
//
//	highpass (20 Hz, or 150 Hz with RemoveBackground), Q 0.5
//	lowpass  (2000 + NoiseReduction*2000 Hz), Q 0.5
//	gain     (x Gain)
//	peaking  (3 kHz, Q 0.7, Clarity*6 dB)
//
// The clarity boost comes last so the lowpass cannot undo it.
//
// # Coefficients
//
// The biquads use the Audio EQ Cookbook formulas in the form used by the
// Web Audio BiquadFilterNode: highpass and lowpass read Q as a resonance in
// dB, peaking reads it as a plain quality factor. Arithmetic is float64 and
// nothing is clipped between stages; saturation is left to the encoder.
//
// # Rendering
//
//	out := filter.Render(buf, filter.Compile(opts))
//
// Render never modifies its input, allocates fresh filter state on every
// call and keeps channel count, sample rate and frame count unchanged. It is
// not idempotent: rendering an already boosted buffer boosts it again.
package filter
