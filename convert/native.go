// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bytes"
	"context"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/encode"
	"github.com/ik5/voxclean/formats"
	"github.com/ik5/voxclean/formats/wav"
)

// Native converts in process. It can read anything the decoder registry
// knows and write 16-bit WAV.
type Native struct {
	Registry *audio.Registry
}

func NewNative(reg *audio.Registry) *Native {
	if reg == nil {
		reg = formats.DefaultRegistry()
	}

	return &Native{Registry: reg}
}

func (n *Native) Supports(target Format) bool { return target == WAV }

func (n *Native) Convert(ctx context.Context, clip *encode.Clip, target Format) (*encode.Clip, error) {
	if !n.Supports(target) {
		return nil, &ConversionError{Format: target, Err: ErrUnsupportedFormat}
	}
	if clip == nil || len(clip.Data) == 0 {
		return nil, &ConversionError{Format: target, Err: ErrEmptyInput}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ConversionError{Format: target, Err: err}
	}

	kind := formats.Sniff(clip.Data[:min(len(clip.Data), formats.HeaderSize)])
	if kind == "" {
		if _, ok := n.Registry.Get(formats.Fallback); ok {
			kind = formats.Fallback
		}
	}

	buf, err := n.Registry.Decode(kind, bytes.NewReader(clip.Data))
	if err != nil {
		return nil, &ConversionError{Format: target, Err: err}
	}

	data, err := wav.EncodeBytes(buf, encode.DefaultBitDepth)
	if err != nil {
		return nil, &ConversionError{Format: target, Err: err}
	}

	return &encode.Clip{Data: data, MIMEType: target.MIMEType(), Captured: clip.Captured}, nil
}
