// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a complete clip held as planar float32 PCM: Data[c][f] is frame
// f of channel c. Every channel holds the same number of frames.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(channels, sampleRate, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

// Duration is the nominal play time, frames / sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the shape invariants.
func (b *Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}
	if len(b.Data) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}

	frames := len(b.Data[0])
	for c, ch := range b.Data {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrInvalidBuffer, c, len(ch), frames)
		}
	}

	return nil
}

// SameShape reports whether o has the same channel count, rate and length.
func (b *Buffer) SameShape(o *Buffer) bool {
	return b.SampleRate == o.SampleRate && b.Channels() == o.Channels() && b.Frames() == o.Frames()
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float32, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append([]float32(nil), ch...)
	}

	return out
}

// Interleave returns the samples frame by frame.
func (b *Buffer) Interleave() []float32 {
	channels := b.Channels()
	out := make([]float32, channels*b.Frames())

	for c, ch := range b.Data {
		for f, v := range ch {
			out[f*channels+c] = v
		}
	}

	return out
}

// Source streams the buffer as interleaved samples without copying it.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/channels, s.buf.Frames()-s.pos)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.Data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

const maxIdleReads = 64

// ReadBuffer drains src into a planar Buffer. A trailing partial frame is
// dropped.
func ReadBuffer(src Source) (*Buffer, error) {
	channels := src.Channels()
	rate := src.SampleRate()
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidBuffer, channels, rate)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	tmp := make([]float32, size)
	var interleaved []float32
	idle := 0

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			interleaved = append(interleaved, tmp[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		// Some decoders return (0, nil) between pages; give up only when
		// that repeats.
		if n == 0 {
			idle++
			if idle > maxIdleReads {
				break
			}
			continue
		}
		idle = 0
	}

	frames := len(interleaved) / channels
	buf := NewBuffer(channels, rate, frames)
	for f := range frames {
		for c := range channels {
			buf.Data[c][f] = interleaved[f*channels+c]
		}
	}

	return buf, nil
}
