// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two channels: go-mp3 upmixes mono streams to
// stereo. Samples arrive as 16-bit PCM and are normalized to [-1, 1).
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
package mp3
