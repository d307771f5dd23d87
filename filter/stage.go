// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"fmt"
	"strings"
)

// Kind tags a Stage.
type Kind int

const (
	Highpass Kind = iota
	Lowpass
	Gain
	Peaking
)

func (k Kind) String() string {
	switch k {
	case Highpass:
		return "highpass"
	case Lowpass:
		return "lowpass"
	case Gain:
		return "gain"
	case Peaking:
		return "peaking"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stage is the stateless description of one step of a Chain. Frequency and Q
// apply to the biquad kinds, GainDB to Peaking and Factor to Gain.
type Stage struct {
	Kind      Kind
	Frequency float64
	Q         float64
	GainDB    float64
	Factor    float64
}

func (s Stage) String() string {
	switch s.Kind {
	case Gain:
		return fmt.Sprintf("gain(x%g)", s.Factor)
	case Peaking:
		return fmt.Sprintf("peaking(%gHz Q%g %+gdB)", s.Frequency, s.Q, s.GainDB)
	default:
		return fmt.Sprintf("%s(%gHz Q%g)", s.Kind, s.Frequency, s.Q)
	}
}

// Chain is applied in order, first stage first.
type Chain []Stage

// Stage returns the first stage of the given kind.
func (c Chain) Stage(kind Kind) (Stage, bool) {
	for _, s := range c {
		if s.Kind == kind {
			return s, true
		}
	}

	return Stage{}, false
}

func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}

	return strings.Join(parts, " -> ")
}
