package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/onlyalpha/internal/clean"
	"github.com/hupe1980/onlyalpha/internal/output"
)

// Suffix is appended to the input path to form the output path.
const Suffix = ".cleaned"

// OutputPath derives the output path by plain string concatenation. The
// path is neither cleaned nor resolved.
func OutputPath(input string) string {
	return input + Suffix
}

// Options configures a filter run.
type Options struct {
	// DryRun filters into memory and leaves the filesystem untouched apart
	// from reading the input.
	DryRun bool

	// Permissions is the mode for a newly created output file. Zero means
	// output.DefaultPermissions.
	Permissions os.FileMode

	// Logger receives progress messages. Nil means slog.Default().
	Logger *slog.Logger
}

// Result describes a completed run.
type Result struct {
	InputPath  string
	OutputPath string
	Stats      clean.Stats
	DryRun     bool

	// Original and Cleaned hold the input and filtered bytes of a dry run.
	// Both are nil otherwise.
	Original []byte
	Cleaned  []byte
}

// Run filters input into OutputPath(input). On failure the returned error is
// an *Error; a partially written output file is left in place.
func Run(ctx context.Context, input string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	in, inInfo, err := openInput(input)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck // read-only handle

	logger.Debug("opened input", slog.String("path", input), slog.Int64("size", inInfo.Size()))

	result := &Result{
		InputPath:  input,
		OutputPath: OutputPath(input),
		DryRun:     opts.DryRun,
	}

	if opts.DryRun {
		return runDry(in, result, logger)
	}

	if outInfo, statErr := os.Stat(result.OutputPath); statErr == nil && os.SameFile(inInfo, outInfo) {
		return nil, &Error{Kind: ErrOutputCreate, Path: result.OutputPath, Err: ErrSameFile}
	}

	createOpts := []output.FileOption{
		output.WithLogger(logger),
		output.WithBufferSize(clean.DefaultBufferSize),
	}
	if opts.Permissions != 0 {
		createOpts = append(createOpts, output.WithPermissions(opts.Permissions))
	}

	out, err := output.Create(result.OutputPath, createOpts...)
	if err != nil {
		return nil, &Error{Kind: ErrOutputCreate, Path: result.OutputPath, Err: err}
	}
	defer out.Close() //nolint:errcheck // closed explicitly below

	stats, streamErr := clean.Stream(out, in)
	result.Stats = stats

	closeErr := out.Close()

	if streamErr != nil {
		return result, streamError(streamErr, input, out.Path())
	}

	if closeErr != nil {
		return result, &Error{Kind: ErrIO, Path: out.Path(), Err: closeErr}
	}

	logger.Debug("cleaned file",
		slog.String("input", input),
		slog.String("output", out.Path()),
		slog.Int64("read", stats.Read),
		slog.Int64("kept", stats.Kept),
		slog.Int64("dropped", stats.Dropped()),
	)

	return result, nil
}

func runDry(in io.Reader, result *Result, logger *slog.Logger) (*Result, error) {
	var original, cleaned bytes.Buffer

	stats, err := clean.Stream(&cleaned, io.TeeReader(in, &original))
	result.Stats = stats

	if err != nil {
		return result, streamError(err, result.InputPath, result.OutputPath)
	}

	result.Original = original.Bytes()
	result.Cleaned = cleaned.Bytes()

	logger.Debug("dry run, output not written",
		slog.String("input", result.InputPath),
		slog.String("output", result.OutputPath),
		slog.Int64("read", stats.Read),
		slog.Int64("kept", stats.Kept),
	)

	return result, nil
}

// openInput opens path for reading and rejects anything but regular files.
// The mode is checked before opening so a FIFO never blocks the open, and
// again on the handle in case the path was swapped in between.
func openInput(path string) (*os.File, os.FileInfo, error) {
	pre, err := os.Stat(path)
	if err != nil {
		return nil, nil, &Error{Kind: ErrInputOpen, Path: path, Err: err}
	}

	if !pre.Mode().IsRegular() {
		return nil, nil, &Error{Kind: ErrInputOpen, Path: path, Err: ErrNotRegular}
	}

	f, err := os.Open(path) //nolint:gosec // path is user input by contract
	if err != nil {
		return nil, nil, &Error{Kind: ErrInputOpen, Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, &Error{Kind: ErrInputOpen, Path: path, Err: err}
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, &Error{Kind: ErrInputOpen, Path: path, Err: ErrNotRegular}
	}

	return f, info, nil
}

// streamError attributes a clean.Stream failure to the side that failed.
func streamError(err error, input, outputPath string) error {
	var readErr *clean.ReadError
	if errors.As(err, &readErr) {
		return &Error{Kind: ErrIO, Path: input, Err: readErr}
	}

	return &Error{Kind: ErrIO, Path: outputPath, Err: err}
}
