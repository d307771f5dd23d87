// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/internal/intpcm"
	"github.com/ik5/voxclean/internal/memio"
)

const formatPCM = 1

type Decoder struct{}

// Decode parses the RIFF header and returns a Source positioned at the first
// sample. Non-seekable readers are buffered in memory first, since go-audio
// needs to walk the chunk list.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := memio.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating data chunk: %w", err)
	}

	format := &goaudio.Format{
		NumChannels: int(dec.NumChans),
		SampleRate:  int(dec.SampleRate),
	}

	return intpcm.New(dec, format, bitDepth, true), nil
}
