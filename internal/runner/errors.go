package runner

import (
	"errors"
	"io/fs"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrUsage reports a bad invocation.
	ErrUsage = errors.New("invalid usage")
	// ErrInputOpen reports that the input could not be opened for reading.
	ErrInputOpen = errors.New("error opening file")
	// ErrOutputCreate reports that the output could not be created.
	ErrOutputCreate = errors.New("error creating output file")
	// ErrIO reports a read, write, flush or close fault after both files
	// were opened.
	ErrIO = errors.New("i/o error")
)

// ErrNotRegular is the cause attached to ErrInputOpen when the input path
// names a directory, device or other non-regular file.
var ErrNotRegular = errors.New("not a regular file")

// ErrSameFile is the cause attached to ErrOutputCreate when the derived
// output path resolves to the input file itself.
var ErrSameFile = errors.New("output path refers to the input file")

// Error is a terminal failure of a filter run.
type Error struct {
	// Kind is one of ErrUsage, ErrInputOpen, ErrOutputCreate, ErrIO.
	Kind error
	// Path is the file the failure concerns. Empty for usage errors.
	Path string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()

	if e.Path != "" {
		msg += ": " + e.Path
	}

	if e.Err != nil {
		msg += ": " + causeText(e.Err)
	}

	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// NewUsageError returns an ErrUsage error with the given cause.
func NewUsageError(cause error) *Error {
	return &Error{Kind: ErrUsage, Err: cause}
}

// causeText strips the path from *fs.PathError causes, since Error already
// prints it.
func causeText(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}

	return err.Error()
}
