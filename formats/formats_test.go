// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/internal/audiotest"
)

// silentDecoder ignores its input and yields 100 frames of silence.
type silentDecoder struct{}

func (silentDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSilentSource(8000, 1, 100), nil
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), WAV},
		{"aiff", []byte("FORM\x00\x00\x00\x2eAIFFCOMM"), AIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x2eAIFCFVER"), AIFF},
		{"ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), OGG},
		{"mp3 id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), MP3},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, MP3},
		{"webm", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42, 0x86, 0x81, 0x01, 0x42, 0xF7, 0x81}, Matroska},
		{"m4a", []byte("\x00\x00\x00\x20ftypM4A "), M4A},
		{"flac", []byte("fLaC\x00\x00\x00\x22\x10\x00\x10\x00"), FLAC},
		{"riff not wave", []byte("RIFF\x24\x00\x00\x00AVI LIST"), ""},
		{"short", []byte("RI"), ""},
		{"empty", nil, ""},
		{"text", []byte("hello world!"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sniff(tt.header); got != tt.want {
				t.Errorf("Sniff(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	want := []string{AIFF, Fallback, FLAC, M4A, Matroska, MP3, OGG, WAV}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		external audio.Decoder
		want     []string
	}{
		{name: "built-in only", external: nil, want: []string{AIFF, MP3, OGG, WAV}},
		{name: "with external", external: silentDecoder{}, want: []string{AIFF, Fallback, FLAC, M4A, Matroska, MP3, OGG, WAV}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NewRegistry(tt.external).Formats(); !slices.Equal(got, tt.want) {
				t.Errorf("Formats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultRegistry_DecodeWAV(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(8000, 1, []int16{0, 16384, -16384, 0})

	kind := Sniff(data[:HeaderSize])
	if kind != WAV {
		t.Fatalf("Sniff() = %q, want wav", kind)
	}

	buf, err := DefaultRegistry().Decode(kind, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if buf.Frames() != 4 || buf.Data[0][1] != 0.5 {
		t.Errorf("decoded %d frames, sample 1 = %v; want 4 frames, 0.5", buf.Frames(), buf.Data[0][1])
	}
}

func TestDefaultRegistry_DecodeGarbage(t *testing.T) {
	t.Parallel()

	for _, kind := range DefaultRegistry().Formats() {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			_, err := DefaultRegistry().Decode(kind, bytes.NewReader([]byte("definitely not audio")))
			if !errors.Is(err, audio.ErrDecode) {
				t.Errorf("Decode(%s, garbage) error = %v, want ErrDecode", kind, err)
			}
		})
	}
}

func TestNewRegistry_ExternalKinds(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(silentDecoder{})
	header := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42, 0x86, 0x81, 0x01, 0x42, 0xF7, 0x81}

	buf, err := reg.Decode(Sniff(header), bytes.NewReader(header))
	if err != nil {
		t.Fatalf("Decode(webm) error = %v", err)
	}
	if buf.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", buf.Frames())
	}
}
