// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg decodes containers the built-in decoders do not handle
// (WebM, Matroska, M4A, FLAC and anything else ffmpeg reads) by piping the
// clip through an external ffmpeg binary and decoding the 16-bit WAV it
// writes back.
//
//	src, err := ffmpeg.Decoder{Path: "ffmpeg"}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
package ffmpeg
