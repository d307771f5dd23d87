// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidBuffer  = errors.New("invalid PCM buffer")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrDecode         = errors.New("decode failed")
)

// DecodeError reports an input blob that could not be turned into PCM.
// It matches ErrDecode with errors.Is.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}

	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
