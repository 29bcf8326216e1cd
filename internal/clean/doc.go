// Package clean implements the keep-predicate and the streaming byte filter
// at the heart of onlyalpha.
//
// A byte is kept when it is an ASCII letter (A-Z, a-z), a space, or a
// newline. Everything else is dropped. Kept bytes are copied verbatim and in
// order, so the output of [Stream] is always a subsequence of its input and
// filtering an already filtered stream is a no-op.
package clean
