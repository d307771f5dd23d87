// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes integer PCM WAV files on top of
// github.com/go-audio/wav.
//
// WAV is also the intermediate container voxclean produces after rendering:
// the re-encode step writes 16-bit PCM WAV, which every delivery converter can
// read.
//
// # Decoding
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src)
//
// 8, 16, 24 and 32-bit integer PCM are accepted, with any channel count and
// sample rate. Extra chunks (LIST, INFO, ...) are skipped. IEEE float WAV is
// rejected with ErrUnsupportedEncoding.
//
// # Encoding
//
//	data, err := wav.EncodeBytes(buf, 16)
//
// Encode needs an io.WriteSeeker because the RIFF and data chunk sizes are
// patched once all samples are written; EncodeBytes uses an in-memory file.
// Samples outside [-1, 1] are saturated, never wrapped.
package wav
