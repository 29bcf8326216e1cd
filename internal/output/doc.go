// Package output manages the destination side of a filter run.
//
// [Create] opens (or truncates) the derived output file and returns a
// buffered [File] whose Close flushes pending bytes before releasing the
// handle. [StdoutWriter] carries the --dry-run preview and the --summary report to
// standard output and tags write failures.
package output
