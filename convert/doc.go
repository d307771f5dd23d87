// SPDX-License-Identifier: EPL-2.0

// Package convert exports processed clips to a delivery format.
//
// FFmpeg shells out to the ffmpeg binary and handles every Format. Native
// covers WAV without any external tool. Router combines the two:
//
//	conv := &convert.Router{
//		Native:   convert.NewNative(nil),
//		Fallback: convert.NewFFmpeg("", time.Minute, logger),
//	}
//	out, err := conv.Convert(ctx, clip, convert.MP3)
//
// Failures are *ConversionError values and are never retried.
package convert
