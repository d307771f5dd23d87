// SPDX-License-Identifier: EPL-2.0

// Package voxclean cleans up short voice recordings.
//
// A clip goes through a fixed pipeline:
//
//	encoded clip -> decode -> filter chain -> re-encode -> (export) convert
//
// Four controls drive the filter chain (see package filter):
//
//   - NoiseReduction (0..1): lowpass cutoff from 2 kHz to 4 kHz
//   - RemoveBackground: highpass at 150 Hz instead of 20 Hz
//   - Gain (0..2): linear level
//   - Clarity (0..1): up to 6 dB of presence boost at 3 kHz
//
// # Quick Start
//
//	clip, err := voxclean.ProcessClip(file, filter.Options{
//		NoiseReduction:   0.5,
//		RemoveBackground: true,
//		Gain:             1,
//		Clarity:          0.5,
//	})
//
// clip.Data is a 16-bit PCM WAV file.
//
// # Processor
//
// A Processor keeps the collaborators of the pipeline:
//
//	p := voxclean.New(
//		voxclean.WithLogger(logger),
//		voxclean.WithSampleRate(48000),
//	)
//	clip, err := p.Process(ctx, data, opts)
//	mp3, err := p.Export(ctx, clip, convert.MP3)
//
// By default the processed clip is re-encoded through encode.Bridge, which
// plays the audio in real time and records it, so Process takes at least as
// long as the clip. Use WithEncoder(encode.Offline{}) for a sample-accurate
// encode that returns immediately.
//
// # Supported Formats
//
// Input is detected from its header: WAV (PCM 8/16/24/32-bit), AIFF, MP3 and
// Ogg Vorbis. Export targets are WAV (in process) and MP3 or Ogg Vorbis
// through ffmpeg.
//
// # Errors
//
//   - *audio.DecodeError (errors.Is audio.ErrDecode): unreadable input
//   - encode.ErrEncode: re-encode failure
//   - *convert.ConversionError (errors.Is convert.ErrConversion): export failure
//
// A *filter.InvariantViolation panic means the renderer changed the shape of
// the signal and is a bug.
package voxclean
