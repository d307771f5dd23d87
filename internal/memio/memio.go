// SPDX-License-Identifier: EPL-2.0

// Package memio provides an in-memory file for codecs that insist on
// io.ReadSeeker or io.WriteSeeker (go-audio's WAV and AIFF packages).
package memio

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidWhence    = errors.New("invalid whence")
	ErrNegativePosition = errors.New("negative position")
)

// File is a growable byte slice with a cursor. The zero value is an empty file.
type File struct {
	data   []byte
	offset int64
}

// NewReader wraps data for reading. data is not copied.
func NewReader(data []byte) *File {
	return &File{data: data}
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte { return f.data }

// Len returns the file size.
func (f *File) Len() int { return len(f.data) }

func (f *File) Read(p []byte) (int, error) {
	if f.offset >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n := copy(p, f.data[f.offset:])
	f.offset += int64(n)

	return n, nil
}

// Write writes at the cursor, extending the file when needed. Seeking past
// the end and writing leaves a zero-filled gap, like a sparse file.
func (f *File) Write(p []byte) (int, error) {
	end := f.offset + int64(len(p))
	if end > int64(len(f.data)) {
		if end > int64(cap(f.data)) {
			grown := make([]byte, end, max(end, int64(2*cap(f.data))))
			copy(grown, f.data)
			f.data = grown
		} else {
			f.data = f.data[:end]
		}
	}

	copy(f.data[f.offset:], p)
	f.offset = end

	return len(p), nil
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	var next int64

	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if next < 0 {
		return 0, ErrNegativePosition
	}

	f.offset = next

	return next, nil
}

// ReadSeeker returns r itself when it already seeks, otherwise it buffers
// the whole stream in memory.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return NewReader(data), nil
}
