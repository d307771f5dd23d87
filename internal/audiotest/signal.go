// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Sine returns frames samples of a sine tone with the given peak amplitude.
func Sine(sampleRate, frames int, frequency, amplitude float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = float32(amplitude * math.Sin(2*math.Pi*frequency*t))
	}

	return out
}

// Noise returns deterministic white noise in [-amplitude, amplitude] from a
// linear congruential generator.
func Noise(frames int, amplitude float64, seed uint32) []float32 {
	out := make([]float32, frames)
	state := seed
	for i := range out {
		state = state*1664525 + 1013904223
		out[i] = float32(amplitude * (float64(state)/float64(math.MaxUint32)*2 - 1))
	}

	return out
}

// RMS of x, ignoring the first skip samples (filter settling time).
func RMS(x []float32, skip int) float64 {
	if skip >= len(x) {
		return 0
	}

	var sum float64
	for _, v := range x[skip:] {
		sum += float64(v) * float64(v)
	}

	return math.Sqrt(sum / float64(len(x)-skip))
}

// Peak returns the largest absolute sample after skip.
func Peak(x []float32, skip int) float64 {
	var peak float64
	for _, v := range x[min(skip, len(x)):] {
		peak = max(peak, math.Abs(float64(v)))
	}

	return peak
}

// WAV16 builds a canonical 44-byte-header PCM 16-bit WAV file from
// interleaved samples.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	byteRate := uint32(sampleRate) * uint32(numChannels) * 2
	blockAlign := numChannels * 2
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
