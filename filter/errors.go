// SPDX-License-Identifier: EPL-2.0

package filter

import "fmt"

// InvariantViolation is the panic value raised when a stage changes the
// shape of the signal it processed. It signals a bug in the renderer.
type InvariantViolation struct {
	Stage   Stage
	Channel int
	Want    int
	Got     int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("filter: stage %s on channel %d produced %d frames, want %d",
		e.Stage, e.Channel, e.Got, e.Want)
}
