// SPDX-License-Identifier: EPL-2.0

// Package encode turns rendered PCM back into a deliverable clip.
//
// Bridge mirrors a capture device that only records in real time: it plays
// the buffer at wall-clock pace and stops recording after the buffer's
// nominal duration, so encoding takes as long as the clip and the result
// may differ from the buffer by a few frames. Offline writes the buffer
// directly and is sample-accurate.
//
// Both produce 16-bit PCM WAV (audio/wav) by default, which every converter
// accepts as input.
package encode
