package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultPermissions is the mode used when Create makes a new file.
const DefaultPermissions os.FileMode = 0o644

// StdoutWriter writes previews and summaries to standard output.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a writer that sends output to the given writer.
// If w is nil, os.Stdout is used.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutWriter{out: w}
}

// Write sends data to the wrapped writer.
func (sw *StdoutWriter) Write(data []byte) (int, error) {
	n, err := sw.out.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}

	return n, nil
}

// File is a buffered, exclusively owned output file.
type File struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	closed bool
}

// FileOption configures Create.
type FileOption func(*fileOptions)

type fileOptions struct {
	perm   os.FileMode
	logger *slog.Logger
	size   int
}

// WithPermissions overrides the default file permissions (0644).
func WithPermissions(perm os.FileMode) FileOption {
	return func(o *fileOptions) {
		o.perm = perm
	}
}

// WithLogger sets the logger used for the overwrite warning.
func WithLogger(logger *slog.Logger) FileOption {
	return func(o *fileOptions) {
		o.logger = logger
	}
}

// WithBufferSize sets the size of the write buffer.
func WithBufferSize(size int) FileOption {
	return func(o *fileOptions) {
		o.size = size
	}
}

// Create opens path for writing, creating it or truncating an existing file.
// Parent directories are never created.
func Create(path string, opts ...FileOption) (*File, error) {
	o := fileOptions{
		perm:   DefaultPermissions,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		o.logger.Warn("overwriting existing file", slog.String("path", path))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.perm) //nolint:gosec // path is user input by contract
	if err != nil {
		return nil, err
	}

	var w *bufio.Writer
	if o.size > 0 {
		w = bufio.NewWriterSize(f, o.size)
	} else {
		w = bufio.NewWriter(f)
	}

	return &File{path: path, f: f, w: w}, nil
}

// Write buffers p for the underlying file.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	return f.w.Write(p)
}

// Close flushes buffered bytes and closes the file. The handle is released
// even when the flush fails; the first error is returned. Close is safe to
// call more than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}

	f.closed = true

	flushErr := f.w.Flush()
	closeErr := f.f.Close()

	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", f.path, flushErr)
	}

	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return fmt.Errorf("closing %s: %w", f.path, closeErr)
	}

	return nil
}

// Path returns the output file path.
func (f *File) Path() string {
	return f.path
}
