// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/internal/memio"
	"github.com/ik5/voxclean/utils"
)

// MIMEType of everything Encode produces.
const MIMEType = "audio/wav"

// Encode writes buf as an integer PCM WAV of bitDepth bits (16, 24 or 32).
// Samples outside [-1, 1] saturate. A buffer with no frames still produces a
// complete header.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBuffer, err)
	}

	channels := buf.Channels()
	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, channels, formatPCM)

	// Convert in chunks so long clips don't need a second full-size copy.
	const chunkFrames = 8192
	frames := buf.Frames()
	intBuf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: buf.SampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, 0, min(frames, chunkFrames)*channels),
	}

	for start := 0; ; start += chunkFrames {
		end := min(start+chunkFrames, frames)

		intBuf.Data = intBuf.Data[:0]
		for f := start; f < end; f++ {
			for c := range channels {
				intBuf.Data = append(intBuf.Data, utils.FloatToPCM(buf.Data[c][f], bitDepth))
			}
		}

		// The first Write emits the header, even when it carries no samples.
		if err := enc.Write(intBuf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}

		if end >= frames {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing header: %w", err)
	}

	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(buf *audio.Buffer, bitDepth int) ([]byte, error) {
	var f memio.File

	if err := Encode(&f, buf, bitDepth); err != nil {
		return nil, err
	}

	return f.Bytes(), nil
}
