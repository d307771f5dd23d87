// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/ik5/voxclean/encode"
)

// DefaultFFmpegPath is looked up in PATH.
const DefaultFFmpegPath = "ffmpeg"

// FFmpeg converts clips with an external ffmpeg binary, streaming the clip on
// stdin and reading the result from stdout.
type FFmpeg struct {
	Path    string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewFFmpeg(path string, timeout time.Duration, logger *slog.Logger) *FFmpeg {
	if path == "" {
		path = DefaultFFmpegPath
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FFmpeg{Path: path, Timeout: timeout, Logger: logger}
}

func outputArgs(f Format) []string {
	switch f {
	case MP3:
		return []string{"-f", "mp3", "-c:a", "libmp3lame", "-q:a", "2"}
	case WAV:
		return []string{"-f", "wav", "-c:a", "pcm_s16le"}
	case OGG:
		return []string{"-f", "ogg", "-c:a", "libvorbis", "-q:a", "5"}
	}

	return nil
}

func (f *FFmpeg) Convert(ctx context.Context, clip *encode.Clip, target Format) (*encode.Clip, error) {
	if !target.valid() {
		return nil, &ConversionError{Format: target, Err: ErrUnsupportedFormat}
	}
	if clip == nil || len(clip.Data) == 0 {
		return nil, &ConversionError{Format: target, Err: ErrEmptyInput}
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	args := []string{"-hide_banner", "-loglevel", "error", "-i", "pipe:0"}
	args = append(args, outputArgs(target)...)
	args = append(args, "pipe:1")

	cmd := exec.CommandContext(ctx, f.Path, args...)
	cmd.Stdin = bytes.NewReader(clip.Data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, &ConversionError{
			Format: target,
			Err:    fmt.Errorf("running %s: %w", f.Path, err),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}

	if stdout.Len() == 0 {
		return nil, &ConversionError{Format: target, Err: ErrEmptyOutput, Stderr: strings.TrimSpace(stderr.String())}
	}

	f.logger().Debug("ffmpeg conversion complete",
		slog.String("format", target.String()),
		slog.Int("in_bytes", len(clip.Data)),
		slog.Int("out_bytes", stdout.Len()),
		slog.Duration("took", time.Since(start)),
	)

	return &encode.Clip{Data: stdout.Bytes(), MIMEType: target.MIMEType(), Captured: clip.Captured}, nil
}

func (f *FFmpeg) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return f.Logger
}
