// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM scales a normalized sample to a signed integer of bitDepth bits.
// Values outside [-1, 1] saturate at the representable limits; NaN is
// written as silence.
func FloatToPCM(x float32, bitDepth int) int {
	if x != x {
		return 0
	}

	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Positive full scale is 2^(n-1)-1, so both ends use the same multiplier.
	// float64 keeps 32-bit output exact.
	scale := float64(int(1)<<(bitDepth-1) - 1)

	return int(float64(x) * scale)
}

// PCMToFloat converts a signed integer sample of bitDepth bits to [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(int(1)<<(bitDepth-1)))
}

// Float32ToInt16 is FloatToPCM specialised for 16-bit output.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}
