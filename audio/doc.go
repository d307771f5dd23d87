// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM representation and the decoding plumbing
// shared by the rest of voxclean.
//
// This package contains:
//   - Buffer, a complete clip as planar float32 PCM
//   - Source and Decoder, the capability interfaces implemented by formats/*
//   - Registry, decoders looked up by format key
//   - Resample for sample rate conversion of whole buffers
//
// # Source Interface
//
// Decoders stream interleaved samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadBuffer drains a Source into a Buffer, and Buffer.Source goes the other
// way, streaming a buffer back out as interleaved samples.
//
// # Buffers
//
// A Buffer holds one []float32 per channel, all of the same length:
//
//	buf := audio.NewBuffer(2, 44100, 88200) // two seconds of stereo silence
//	fmt.Println(buf.Duration())             // 2s
//
// Processing stages never modify a Buffer they were given; they return a new one.
//
// # Decoding
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	buf, err := registry.Decode("wav", file)
//
// Any decoding failure comes back as *DecodeError, which matches ErrDecode:
//
//	if errors.Is(err, audio.ErrDecode) {
//	    // the original clip is unreadable
//	}
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Intermediate processing may exceed that
// range; only encoders saturate.
package audio
