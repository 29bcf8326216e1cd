package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Result holds the result of a unified diff computation.
type Result struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
}

// Options configures diff computation.
type Options struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultOptions returns sensible default diff options.
func DefaultOptions() Options {
	return Options{
		OldLabel: "input",
		NewLabel: "cleaned",
		Context:  3,
	}
}

// Compute computes a line-based unified diff from original to cleaned.
func Compute(original, cleaned []byte, opts Options) (*Result, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(string(original)),
		B:        splitLines(string(cleaned)),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	}

	unified, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	hasDiff := unified != ""

	var hunks []string
	if hasDiff {
		hunks = extractHunks(unified)
	}

	return &Result{
		Unified:        unified,
		HasDifferences: hasDiff,
		Hunks:          hunks,
		OldLabel:       opts.OldLabel,
		NewLabel:       opts.NewLabel,
	}, nil
}

// extractHunks splits unified diff output into individual hunks. The file
// header lines are not part of any hunk.
func extractHunks(unified string) []string {
	var hunks []string

	var current strings.Builder

	for _, line := range strings.SplitAfter(unified, "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 {
			hunks = append(hunks, current.String())
			current.Reset()
		}

		if current.Len() == 0 && !strings.HasPrefix(line, "@@") {
			continue
		}

		current.WriteString(line)
	}

	if current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

// Write writes a formatted diff to w with optional ANSI colors, followed by
// a line counting the changed hunks.
func Write(w io.Writer, result *Result, color bool) error {
	if !result.HasDifferences {
		_, err := fmt.Fprintln(w, "No differences found.")
		return err
	}

	for _, line := range strings.Split(strings.TrimSuffix(result.Unified, "\n"), "\n") {
		if !color {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}

			continue
		}

		if err := writeColorLine(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d changed hunk(s)\n", len(result.Hunks))

	return err
}

func writeColorLine(w io.Writer, line string) error {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)

	var err error

	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		_, err = fmt.Fprintf(w, "%s%s%s\n", bold, line, reset)
	case strings.HasPrefix(line, "@@"):
		_, err = fmt.Fprintf(w, "%s%s%s\n", cyan, line, reset)
	case strings.HasPrefix(line, "-"):
		_, err = fmt.Fprintf(w, "%s%s%s\n", red, line, reset)
	case strings.HasPrefix(line, "+"):
		_, err = fmt.Fprintf(w, "%s%s%s\n", green, line, reset)
	default:
		_, err = fmt.Fprintln(w, line)
	}

	return err
}

// splitLines splits s into newline-terminated lines for difflib. A final
// line without a newline gets one so hunks stay line-aligned.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else if !strings.HasSuffix(last, "\n") {
		lines[len(lines)-1] = last + "\n"
	}

	return lines
}
