// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by decoders, encoders
// and the resampler: PCM integer/float conversion with saturation and cubic
// interpolation.
package utils
