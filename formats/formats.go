// SPDX-License-Identifier: EPL-2.0

// Package formats wires the container decoders into an audio.Registry and
// detects a container from its leading bytes.
package formats

import (
	"bytes"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/aiff"
	"github.com/ik5/voxclean/formats/ffmpeg"
	"github.com/ik5/voxclean/formats/mp3"
	"github.com/ik5/voxclean/formats/vorbis"
	"github.com/ik5/voxclean/formats/wav"
)

// Registry keys.
const (
	WAV  = "wav"
	AIFF = "aiff"
	OGG  = "ogg"
	MP3  = "mp3"

	// Decoded through ffmpeg.
	Matroska = "matroska" // also WebM
	M4A      = "m4a"
	FLAC     = "flac"

	// Fallback is tried when Sniff recognizes nothing.
	Fallback = "ffmpeg"
)

// HeaderSize is enough leading bytes for Sniff to decide.
const HeaderSize = 12

// DefaultRegistry returns a registry with every built-in decoder and ffmpeg
// from PATH for everything else.
func DefaultRegistry() *audio.Registry {
	return NewRegistry(ffmpeg.Decoder{Path: ffmpeg.DefaultPath})
}

// NewRegistry returns the built-in decoders with external registered for
// Matroska, M4A, FLAC and Fallback. A nil external leaves those keys out.
func NewRegistry(external audio.Decoder) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(OGG, vorbis.Decoder{})
	reg.Register(MP3, mp3.Decoder{})

	if external != nil {
		for _, kind := range []string{Matroska, M4A, FLAC, Fallback} {
			reg.Register(kind, external)
		}
	}

	return reg
}

// Sniff returns the registry key for the container in header, or "" when
// nothing matches.
func Sniff(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return WAV
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return AIFF
	case bytes.HasPrefix(header, []byte("OggS")):
		return OGG
	case bytes.HasPrefix(header, []byte("ID3")):
		return MP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return MP3
	case bytes.HasPrefix(header, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return Matroska
	case len(header) >= 8 && bytes.Equal(header[4:8], []byte("ftyp")):
		return M4A
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FLAC
	}

	return ""
}
