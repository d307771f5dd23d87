// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files with
// github.com/go-audio/aiff.
//
// # Supported Formats
//
//   - Uncompressed PCM at 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// AIFF-C compressed streams are rejected. Samples are normalized to float32
// in [-1, 1).
//
// # Errors
//
//   - ErrNotAiffFile: missing FORM/AIFF header
//   - ErrUnsupportedBitDepth: sample size outside 8/16/24/32
//   - ErrUnsupportedAiffLayout: no usable channel layout
//
// Non-seekable readers are buffered in memory because go-audio walks the
// chunk list with Seek.
package aiff
