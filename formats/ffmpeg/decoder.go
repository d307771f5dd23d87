// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/formats/wav"
)

// DefaultPath is looked up in PATH.
const DefaultPath = "ffmpeg"

var (
	ErrEmptyInput  = errors.New("ffmpeg: empty input")
	ErrEmptyOutput = errors.New("ffmpeg: no audio in output")
)

// Decoder runs Path once per clip. A zero Timeout means no limit.
type Decoder struct {
	Path    string
	Timeout time.Duration
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading clip: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	out, err := d.toWAV(data)
	if err != nil {
		return nil, err
	}

	return wav.Decoder{}.Decode(bytes.NewReader(out))
}

func (d Decoder) path() string {
	if d.Path == "" {
		return DefaultPath
	}

	return d.Path
}

// toWAV writes to a temporary file rather than stdout: on a pipe ffmpeg
// cannot go back and fill in the RIFF chunk sizes.
func (d Decoder) toWAV(data []byte) ([]byte, error) {
	ctx := context.Background()
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "voxclean-decode-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "decoded.wav")

	cmd := exec.CommandContext(ctx, d.path(),
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", "pipe:0",
		"-f", "wav", "-c:a", "pcm_s16le",
		target,
	)
	cmd.Stdin = bytes.NewReader(data)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", d.path(), err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", d.path(), err)
	}

	out, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("reading decoded clip: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyOutput
	}

	return out, nil
}
