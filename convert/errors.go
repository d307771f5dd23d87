// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"errors"
	"fmt"
)

var (
	ErrConversion        = errors.New("conversion failed")
	ErrUnsupportedFormat = errors.New("unsupported target format")
	ErrEmptyInput        = errors.New("empty input clip")
	ErrEmptyOutput       = errors.New("engine produced no output")
)

// ConversionError reports a failed export. It matches ErrConversion with
// errors.Is. The processed clip given to the converter is untouched.
type ConversionError struct {
	Format Format
	Err    error
	// Stderr holds the engine's diagnostics, if any.
	Stderr string
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert to %s: %v", e.Format, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}

	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }
