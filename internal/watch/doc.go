// Package watch re-runs the filter whenever the input file changes. It
// watches the input's parent directory, ignores every event that does not
// name the input itself (in particular writes to the .cleaned output), and
// debounces bursts of events into a single run.
package watch
