// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM readers (WAV, AIFF) to
// audio.Source.
package intpcm

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/voxclean/utils"
)

// Reader is the subset of go-audio's wav.Decoder and aiff.Decoder we use.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalizes go-audio integer samples to float32.
type Source struct {
	dec       Reader
	format    *goaudio.Format
	bitDepth  int
	unsigned8 bool // 8-bit WAV stores unsigned samples
	intBuf    *goaudio.IntBuffer
	done      bool
}

// New wraps dec. unsigned8 must be set for 8-bit WAV data.
func New(dec Reader, format *goaudio.Format, bitDepth int, unsigned8 bool) *Source {
	return &Source{
		dec:       dec,
		format:    format,
		bitDepth:  bitDepth,
		unsigned8: unsigned8 && bitDepth == 8,
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if n == 0 {
		s.done = true
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		if s.unsigned8 {
			v -= 128
		}
		dst[i] = utils.PCMToFloat(v, s.bitDepth)
	}

	// A short read without error is the end of the data chunk.
	if n < len(dst) || err == io.EOF {
		s.done = true
		return n, io.EOF
	}

	return n, nil
}
