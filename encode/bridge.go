// SPDX-License-Identifier: EPL-2.0

package encode

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/wav"
)

// DefaultChunkDuration is how much audio the player hands to the recorder
// per tick.
const DefaultChunkDuration = 20 * time.Millisecond

// Bridge re-encodes a buffer the way a real-time capture device would: a
// player goroutine emits the samples paced by the wall clock, a recorder
// goroutine collects them, and capture stops when a timer equal to the
// buffer's nominal duration fires. Whatever was recorded by then becomes the
// clip, so its length can drift from the buffer by scheduling jitter.
//
// A Bridge owns a single playback/capture device. Concurrent Encode calls
// queue for it. Create one with NewBridge; the zero value is not usable.
type Bridge struct {
	chunk    time.Duration
	bitDepth int
	logger   *slog.Logger
	device   chan struct{}
}

type BridgeOption func(*Bridge)

// WithChunkDuration sets the pacing interval of the player.
func WithChunkDuration(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		if d > 0 {
			b.chunk = d
		}
	}
}

// WithBitDepth sets the WAV bit depth of produced clips.
func WithBitDepth(bits int) BridgeOption {
	return func(b *Bridge) { b.bitDepth = bits }
}

func WithLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

func NewBridge(opts ...BridgeOption) *Bridge {
	b := &Bridge{
		chunk:    DefaultChunkDuration,
		bitDepth: DefaultBitDepth,
		logger:   slog.New(slog.DiscardHandler),
		device:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Encode plays buf through the device and returns the captured clip. It
// blocks for at least buf.Duration(). ctx is honored only while waiting for
// the device; a started capture always runs to completion.
func (b *Bridge) Encode(ctx context.Context, buf *audio.Buffer) (*Clip, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	select {
	case b.device <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for device: %w", ErrEncode, ctx.Err())
	}
	defer func() { <-b.device }()

	recorded, captured := b.capture(buf)

	if drift := recorded.Frames() - buf.Frames(); drift != 0 {
		b.logger.Warn("capture length drifted from buffer",
			slog.Int("frames", buf.Frames()),
			slog.Int("captured_frames", recorded.Frames()),
			slog.Duration("nominal", buf.Duration()),
			slog.Duration("captured", captured),
		)
	}

	data, err := wav.EncodeBytes(recorded, b.bitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	b.logger.Debug("bridge capture complete",
		slog.Duration("captured", captured),
		slog.Int("bytes", len(data)),
	)

	return &Clip{Data: data, MIMEType: wav.MIMEType, Captured: captured}, nil
}

// capture runs the player and recorder until the stop timer fires and returns
// what the recorder collected together with the elapsed wall-clock time.
func (b *Bridge) capture(buf *audio.Buffer) (*audio.Buffer, time.Duration) {
	channels := buf.Channels()
	chunkFrames := framesPerChunk(buf.SampleRate, b.chunk)

	available := make(chan []float32, 4)
	stop := make(chan struct{})
	start := time.Now()

	go play(buf.Source(), chunkFrames*channels, b.chunk, available, stop)

	recorded := make(chan []float32, 1)
	go func() {
		var samples []float32
		for chunk := range available {
			samples = append(samples, chunk...)
		}
		recorded <- samples
	}()

	timer := time.NewTimer(buf.Duration())
	<-timer.C
	captured := time.Since(start)
	close(stop)

	samples := <-recorded

	frames := len(samples) / channels
	out := audio.NewBuffer(channels, buf.SampleRate, frames)
	for f := range frames {
		for c := range channels {
			out.Data[c][f] = samples[f*channels+c]
		}
	}

	return out, captured
}

// framesPerChunk rounds up so that the player never falls behind the
// nominal rate when interval does not divide evenly into whole frames.
func framesPerChunk(rate int, interval time.Duration) int {
	n := (time.Duration(rate)*interval + time.Second - 1) / time.Second
	return max(1, int(n))
}

// play emits one chunk of src per tick until src is drained or stop closes.
func play(src audio.Source, size int, interval time.Duration, out chan<- []float32, stop <-chan struct{}) {
	defer close(out)
	defer src.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		chunk := make([]float32, size)
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			select {
			case out <- chunk[:n]:
			case <-stop:
				return
			}
		}
		// io.EOF ends playback; buffer sources fail no other way.
		if err != nil || n == 0 {
			return
		}

		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}
