// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"sync"
	"time"

	"github.com/ik5/voxclean/audio"
)

// Result is a rendered buffer and its nominal duration.
type Result struct {
	Buffer   *audio.Buffer
	Duration time.Duration
}

// Render applies chain to every channel of buf and returns a new buffer with
// the same channel count, sample rate and length. buf is not modified.
//
// Channels are rendered concurrently; within a channel the stages run in
// chain order with fresh zeroed state. Render panics with
// *InvariantViolation if a stage alters the frame count.
func Render(buf *audio.Buffer, chain Chain) *audio.Buffer {
	out := buf.Clone()
	if buf.Frames() == 0 {
		return out
	}

	coeffs := make([]coefficients, len(chain))
	for i, s := range chain {
		coeffs[i] = design(s, buf.SampleRate)
	}

	violations := make([]*InvariantViolation, len(out.Data))

	var wg sync.WaitGroup
	for c := range out.Data {
		wg.Add(1)
		go func() {
			defer wg.Done()
			violations[c] = renderChannel(chain, coeffs, c, out.Data[c])
		}()
	}
	wg.Wait()

	for _, v := range violations {
		if v != nil {
			panic(v)
		}
	}
	mustPreserveShape(buf, out)

	return out
}

// renderChannel runs every stage over samples in place.
func renderChannel(chain Chain, coeffs []coefficients, channel int, samples []float32) *InvariantViolation {
	frames := len(samples)
	states := make([]state, len(coeffs))

	for i := range coeffs {
		coeffs[i].run(&states[i], samples)

		if len(samples) != frames {
			return &InvariantViolation{Stage: chain[i], Channel: channel, Want: frames, Got: len(samples)}
		}
	}

	return nil
}

func mustPreserveShape(in, out *audio.Buffer) {
	if out.Channels() != in.Channels() {
		panic(&InvariantViolation{Channel: -1, Want: in.Channels(), Got: out.Channels()})
	}

	for c, ch := range out.Data {
		if len(ch) != in.Frames() {
			panic(&InvariantViolation{Channel: c, Want: in.Frames(), Got: len(ch)})
		}
	}
}

// Process compiles opts and renders buf with the resulting chain.
func Process(buf *audio.Buffer, opts Options) Result {
	out := Render(buf, Compile(opts))

	return Result{Buffer: out, Duration: out.Duration()}
}
