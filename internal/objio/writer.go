// Package objio provides small io helpers used when writing the compiled
// translator's binary artefacts (instruction image and data image) to disk.
package objio

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and remembers the first write error, turning
// a long sequence of unconditional writes into a single error check at the
// end.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteWord writes a single 32-bit big-endian word.
func (w *ErrWriter) WriteWord(word uint32) {
	var b [4]byte
	b[0] = byte(word >> 24)
	b[1] = byte(word >> 16)
	b[2] = byte(word >> 8)
	b[3] = byte(word)
	w.Write(b[:])
}
