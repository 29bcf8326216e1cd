package clean

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBufferSize is the chunk size used by [Stream].
const DefaultBufferSize = 32 * 1024

// Stats counts the bytes seen by a filter run.
type Stats struct {
	// Read is the number of bytes consumed from the source.
	Read int64 `json:"read" yaml:"read"`
	// Kept is the number of bytes written to the destination.
	Kept int64 `json:"kept" yaml:"kept"`
}

// Dropped returns the number of discarded bytes.
func (s Stats) Dropped() int64 {
	return s.Read - s.Kept
}

// ReadError marks a failure reading from the source of a [Stream].
type ReadError struct{ Err error }

func (e *ReadError) Error() string { return fmt.Sprintf("reading: %v", e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError marks a failure writing to the destination of a [Stream].
type WriteError struct{ Err error }

func (e *WriteError) Error() string { return fmt.Sprintf("writing: %v", e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// Stream copies the kept bytes of src to dst until src reports io.EOF.
// Stats reflect the bytes processed up to the point of failure. Errors are
// returned as *ReadError or *WriteError so callers can tell the sides apart.
func Stream(dst io.Writer, src io.Reader) (Stats, error) {
	return StreamBuffer(dst, src, make([]byte, DefaultBufferSize))
}

// StreamBuffer is [Stream] with a caller-supplied scratch buffer.
func StreamBuffer(dst io.Writer, src io.Reader, buf []byte) (Stats, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultBufferSize)
	}

	var stats Stats

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			stats.Read += int64(n)

			// Filter in place; kept bytes never outrun the read cursor.
			kept := AppendKept(buf[:0], buf[:n])
			if len(kept) > 0 {
				w, werr := dst.Write(kept)
				stats.Kept += int64(w)

				if werr != nil {
					return stats, &WriteError{Err: werr}
				}

				if w != len(kept) {
					return stats, &WriteError{Err: io.ErrShortWrite}
				}
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return stats, nil
			}

			return stats, &ReadError{Err: rerr}
		}
	}
}

// Writer is an io.Writer that forwards only kept bytes to an underlying
// writer. It reports len(p) on success so it composes with io.Copy.
type Writer struct {
	w     io.Writer
	stats Stats
	buf   []byte
}

// NewWriter wraps w in a filtering writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write filters p and writes the survivors.
func (fw *Writer) Write(p []byte) (int, error) {
	fw.stats.Read += int64(len(p))
	fw.buf = AppendKept(fw.buf[:0], p)

	if len(fw.buf) == 0 {
		return len(p), nil
	}

	n, err := fw.w.Write(fw.buf)
	fw.stats.Kept += int64(n)

	if err != nil {
		return 0, err
	}

	if n != len(fw.buf) {
		return 0, io.ErrShortWrite
	}

	return len(p), nil
}

// Stats returns the counts accumulated so far.
func (fw *Writer) Stats() Stats {
	return fw.stats
}
