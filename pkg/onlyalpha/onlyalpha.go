// Package onlyalpha provides a public Go API for stripping text down to
// ASCII letters, spaces and newlines.
//
// This package exposes the onlyalpha filter as a library, allowing
// programmatic use without the CLI.
//
// Filtering a file writes <path>.cleaned next to it:
//
//	result, err := onlyalpha.CleanFile(ctx, "notes.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath, result.Kept)
//
// Filtering a stream:
//
//	stats, err := onlyalpha.Clean(os.Stdout, os.Stdin)
package onlyalpha

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/onlyalpha/internal/clean"
	"github.com/hupe1980/onlyalpha/internal/logging"
	"github.com/hupe1980/onlyalpha/internal/runner"
)

// Suffix is appended to an input path to form its output path.
const Suffix = runner.Suffix

// Error kinds returned by CleanFile, matched with errors.Is.
var (
	ErrInputOpen    = runner.ErrInputOpen
	ErrOutputCreate = runner.ErrOutputCreate
	ErrIO           = runner.ErrIO
)

// Stats counts the bytes seen by a filter run.
type Stats = clean.Stats

// Writer forwards only kept bytes to an underlying io.Writer.
type Writer = clean.Writer

// NewWriter wraps w so that everything written through it is filtered.
func NewWriter(w io.Writer) *Writer {
	return clean.NewWriter(w)
}

// Option configures CleanFile.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	dryRun      bool
	permissions os.FileMode
}

// WithLogger sets a logger for progress messages (default: discard).
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithDryRun filters into memory and does not write the output file.
// The filtered bytes are returned in Result.Cleaned.
func WithDryRun() Option { return func(o *options) { o.dryRun = true } }

// WithPermissions sets the mode of a newly created output file.
func WithPermissions(perm os.FileMode) Option { return func(o *options) { o.permissions = perm } }

// Result holds the outcome of CleanFile.
type Result struct {
	// InputPath is the path that was read.
	InputPath string
	// OutputPath is the path written (or that would be written in a dry run).
	OutputPath string
	// Read is the number of input bytes.
	Read int64
	// Kept is the number of bytes written to the output.
	Kept int64
	// Cleaned holds the filtered bytes of a dry run.
	Cleaned []byte
}

// CleanFile filters the file at path into path + Suffix.
//
// When the stream fails after both files were opened, the error matches
// ErrIO and the returned Result still reports how many bytes were read and
// kept before the failure. Earlier failures return a nil Result.
func CleanFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	o := &options{logger: logging.Discard()}

	for _, opt := range opts {
		opt(o)
	}

	res, err := runner.Run(ctx, path, runner.Options{
		DryRun:      o.dryRun,
		Permissions: o.permissions,
		Logger:      o.logger,
	})
	if res == nil {
		return nil, err
	}

	return &Result{
		InputPath:  res.InputPath,
		OutputPath: res.OutputPath,
		Read:       res.Stats.Read,
		Kept:       res.Stats.Kept,
		Cleaned:    res.Cleaned,
	}, err
}

// Clean copies the kept bytes of src to dst until EOF.
func Clean(dst io.Writer, src io.Reader) (Stats, error) {
	return clean.Stream(dst, src)
}

// CleanBytes returns the kept bytes of b in a new slice.
func CleanBytes(b []byte) []byte {
	return clean.Bytes(b)
}

// IsKept reports whether c is an ASCII letter, a space or a newline.
func IsKept(c byte) bool {
	return clean.IsKept(c)
}

// OutputPath returns path + Suffix.
func OutputPath(path string) string {
	return runner.OutputPath(path)
}
