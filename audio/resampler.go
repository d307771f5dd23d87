// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/voxclean/utils"
)

// Resample converts buf to rate using cubic interpolation, channel by channel.
// Channel count is preserved and the result is a new buffer; buf is left
// untouched. When downsampling, a one-pole low-pass smooths the input first to
// tame aliasing.
func Resample(buf *Buffer, rate int) *Buffer {
	if rate <= 0 || rate == buf.SampleRate {
		return buf.Clone()
	}

	ratio := float64(buf.SampleRate) / float64(rate) // source frames per output frame
	inFrames := buf.Frames()
	outFrames := int(math.Round(float64(inFrames) / ratio))

	out := NewBuffer(buf.Channels(), rate, outFrames)
	if inFrames == 0 {
		return out
	}

	for c, in := range buf.Data {
		if ratio > 1 {
			in = smooth(in, 0.5)
		}

		dst := out.Data[c]
		last := inFrames - 1
		at := func(i int) float32 {
			return in[min(max(i, 0), last)]
		}

		for f := range dst {
			pos := float64(f) * ratio
			idx := int(pos)
			frac := float32(pos - float64(idx))

			dst[f] = utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
		}
	}

	return out
}

// smooth runs y[n] = alpha*x[n] + (1-alpha)*y[n-1], seeded with x[0] to avoid
// a warm-up transient.
func smooth(in []float32, alpha float32) []float32 {
	out := make([]float32, len(in))
	prev := in[0]

	for i, x := range in {
		prev = alpha*x + (1-alpha)*prev
		out[i] = prev
	}

	return out
}
