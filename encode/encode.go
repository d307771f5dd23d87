// SPDX-License-Identifier: EPL-2.0

package encode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/wav"
)

var ErrEncode = errors.New("encode failed")

// Clip is an encoded audio blob.
type Clip struct {
	Data     []byte
	MIMEType string
	// Captured is how long the capture ran, measured on the wall clock for
	// real-time encoders.
	Captured time.Duration
}

// Encoder turns a rendered buffer into a deliverable clip.
type Encoder interface {
	Encode(ctx context.Context, buf *audio.Buffer) (*Clip, error)
}

// DefaultBitDepth of the intermediate WAV container.
const DefaultBitDepth = 16

// Offline writes the whole buffer to WAV in one step, without real-time
// playback. The clip length is exactly the buffer length.
type Offline struct {
	BitDepth int
}

func (o Offline) Encode(ctx context.Context, buf *audio.Buffer) (*Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	bitDepth := o.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	data, err := wav.EncodeBytes(buf, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return &Clip{Data: data, MIMEType: wav.MIMEType, Captured: buf.Duration()}, nil
}
