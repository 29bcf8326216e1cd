// Package runner drives a single filter run: it opens the input file,
// derives and creates the output file, streams the input through the
// keep-predicate and releases both handles on every exit path.
//
// Failures are reported as *[Error] values whose kind is one of the
// sentinels [ErrUsage], [ErrInputOpen], [ErrOutputCreate] or [ErrIO]:
//
//	if errors.Is(err, runner.ErrInputOpen) {
//	    // the source could not be opened
//	}
package runner
