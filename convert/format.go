// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"fmt"
	"strings"
)

// Format is a delivery container.
type Format int

const (
	MP3 Format = iota + 1
	WAV
	OGG
)

// Formats lists every supported target.
func Formats() []Format { return []Format{MP3, WAV, OGG} }

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "mp3", "mpeg":
		return MP3, nil
	case "wav", "wave":
		return WAV, nil
	case "ogg", "oga", "vorbis":
		return OGG, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) String() string {
	switch f {
	case MP3:
		return "mp3"
	case WAV:
		return "wav"
	case OGG:
		return "ogg"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension including the leading dot.
func (f Format) Extension() string { return "." + f.String() }

func (f Format) MIMEType() string {
	switch f {
	case MP3:
		return "audio/mpeg"
	case WAV:
		return "audio/wav"
	case OGG:
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

func (f Format) valid() bool { return f >= MP3 && f <= OGG }
