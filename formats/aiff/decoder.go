// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/internal/intpcm"
	"github.com/ik5/voxclean/internal/memio"
)

type Decoder struct{}

// Decode reads the COMM chunk and returns a Source over the SSND samples.
// AIFF stores signed big-endian PCM at every bit depth.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := memio.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading aiff info: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return intpcm.New(dec, format, bitDepth, false), nil
}
