// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"math"
	"math/cmplx"
)

// coefficients of a biquad normalized by a0. A Gain stage is the degenerate
// case b0 = factor with no feedback.
type coefficients struct {
	b0, b1, b2 float64
	a1, a2     float64
}

var (
	passThrough = coefficients{b0: 1}
	silence     = coefficients{}
)

func normalize(b0, b1, b2, a0, a1, a2 float64) coefficients {
	inv := 1 / a0
	return coefficients{
		b0: b0 * inv,
		b1: b1 * inv,
		b2: b2 * inv,
		a1: a1 * inv,
		a2: a2 * inv,
	}
}

// design computes the coefficients of s at sampleRate. Lowpass and highpass
// take Q as a resonance in dB; peaking takes a linear Q.
func design(s Stage, sampleRate int) coefficients {
	nyquist := float64(sampleRate) / 2
	cutoff := s.Frequency / nyquist

	switch s.Kind {
	case Gain:
		return coefficients{b0: s.Factor}

	case Lowpass:
		switch {
		case cutoff >= 1:
			return passThrough
		case cutoff <= 0:
			return silence
		}

		w0 := math.Pi * cutoff
		alpha := math.Sin(w0) / (2 * math.Pow(10, s.Q/20))
		cosw := math.Cos(w0)

		return normalize((1-cosw)/2, 1-cosw, (1-cosw)/2, 1+alpha, -2*cosw, 1-alpha)

	case Highpass:
		switch {
		case cutoff >= 1:
			return silence
		case cutoff <= 0:
			return passThrough
		}

		w0 := math.Pi * cutoff
		alpha := math.Sin(w0) / (2 * math.Pow(10, s.Q/20))
		cosw := math.Cos(w0)

		return normalize((1+cosw)/2, -(1 + cosw), (1+cosw)/2, 1+alpha, -2*cosw, 1-alpha)

	case Peaking:
		A := math.Pow(10, s.GainDB/40)
		if cutoff <= 0 || cutoff >= 1 {
			return passThrough
		}
		if s.Q <= 0 {
			return coefficients{b0: A * A}
		}

		w0 := math.Pi * cutoff
		alpha := math.Sin(w0) / (2 * s.Q)
		cosw := math.Cos(w0)

		return normalize(1+alpha*A, -2*cosw, 1-alpha*A, 1+alpha/A, -2*cosw, 1-alpha/A)
	}

	return passThrough
}

// state is the Direct Form I history of one stage on one channel.
type state struct {
	x1, x2, y1, y2 float64
}

// run filters buf in place.
func (c coefficients) run(st *state, buf []float32) {
	if c.b1 == 0 && c.b2 == 0 && c.a1 == 0 && c.a2 == 0 {
		for i, x := range buf {
			buf[i] = float32(c.b0 * float64(x))
		}
		return
	}

	x1, x2, y1, y2 := st.x1, st.x2, st.y1, st.y2
	for i, v := range buf {
		x0 := float64(v)
		y0 := c.b0*x0 + c.b1*x1 + c.b2*x2 - c.a1*y1 - c.a2*y2

		x2, x1 = x1, x0
		y2, y1 = y1, y0

		buf[i] = float32(y0)
	}
	st.x1, st.x2, st.y1, st.y2 = x1, x2, y1, y2
}

func (c coefficients) magnitude(freq float64, sampleRate int) float64 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.b0, 0) + complex(c.b1, 0)*z1 + complex(c.b2, 0)*z2
	den := 1 + complex(c.a1, 0)*z1 + complex(c.a2, 0)*z2

	return cmplx.Abs(num / den)
}

// Response returns the magnitude response of s at freq Hz for the given
// sample rate.
func Response(s Stage, sampleRate int, freq float64) float64 {
	return design(s, sampleRate).magnitude(freq, sampleRate)
}

// ChainResponse multiplies the stage responses of c.
func ChainResponse(c Chain, sampleRate int, freq float64) float64 {
	mag := 1.0
	for _, s := range c {
		mag *= Response(s, sampleRate, freq)
	}

	return mag
}
