// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float samples, so no integer conversion is
// involved; channel count and sample rate come from the identification header.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
package vorbis
