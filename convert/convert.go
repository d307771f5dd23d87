// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"context"

	"github.com/ik5/voxclean/encode"
)

// Converter transcodes a clip into a delivery format. Implementations never
// retry; a failure is returned as *ConversionError.
type Converter interface {
	Convert(ctx context.Context, clip *encode.Clip, target Format) (*encode.Clip, error)
}

// Router sends targets the in-process engine can produce to Native and
// everything else to Fallback.
type Router struct {
	Native   *Native
	Fallback Converter
}

func (r *Router) Convert(ctx context.Context, clip *encode.Clip, target Format) (*encode.Clip, error) {
	if r.Native != nil && r.Native.Supports(target) {
		return r.Native.Convert(ctx, clip, target)
	}

	if r.Fallback == nil {
		return nil, &ConversionError{Format: target, Err: ErrUnsupportedFormat}
	}

	return r.Fallback.Convert(ctx, clip, target)
}
