// Package report formats the summary of a filter run for --summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/onlyalpha/internal/runner"
)

// Summary describes one filter run.
type Summary struct {
	Input   string `json:"input" yaml:"input"`
	Output  string `json:"output" yaml:"output"`
	Read    int64  `json:"bytesRead" yaml:"bytesRead"`
	Kept    int64  `json:"bytesKept" yaml:"bytesKept"`
	Dropped int64  `json:"bytesDropped" yaml:"bytesDropped"`
	DryRun  bool   `json:"dryRun" yaml:"dryRun"`
}

// FromResult builds a Summary from a runner result.
func FromResult(r *runner.Result) Summary {
	return Summary{
		Input:   r.InputPath,
		Output:  r.OutputPath,
		Read:    r.Stats.Read,
		Kept:    r.Stats.Kept,
		Dropped: r.Stats.Dropped(),
		DryRun:  r.DryRun,
	}
}

// Formatter writes a summary to a writer.
type Formatter interface {
	Format(w io.Writer, s Summary) error
}

// Formats lists the accepted names for NewFormatter.
var Formats = []string{"text", "json", "yaml"}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported summary format %q: use %s", format, strings.Join(Formats, ", "))
	}
}

// TextFormatter writes an aligned key/value table.
type TextFormatter struct{}

// Format writes s as a human-readable table.
func (f *TextFormatter) Format(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "input:\t%s\n", s.Input)

	if s.DryRun {
		_, _ = fmt.Fprintf(tw, "output:\t%s (dry run, not written)\n", s.Output)
	} else {
		_, _ = fmt.Fprintf(tw, "output:\t%s\n", s.Output)
	}

	_, _ = fmt.Fprintf(tw, "read:\t%d bytes\n", s.Read)
	_, _ = fmt.Fprintf(tw, "kept:\t%d bytes\n", s.Kept)
	_, _ = fmt.Fprintf(tw, "dropped:\t%d bytes\n", s.Dropped)

	return tw.Flush()
}

// JSONFormatter writes the summary as indented JSON.
type JSONFormatter struct{}

// Format writes s as JSON.
func (f *JSONFormatter) Format(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	return nil
}

// YAMLFormatter writes the summary as a YAML document.
type YAMLFormatter struct{}

// Format writes s as YAML.
func (f *YAMLFormatter) Format(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	return enc.Close()
}
