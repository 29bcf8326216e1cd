// Package preview renders what a filter run would change as a unified diff
// between the input and the filtered bytes. It backs --dry-run.
package preview
