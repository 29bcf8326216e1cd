package cli

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/onlyalpha/internal/config"
	"github.com/hupe1980/onlyalpha/internal/report"
)

func TestFilter_DryRunPrintsDiff(t *testing.T) {
	in := writeInput(t, "Hello, World! 123\nplain line\n")

	stdout, _, err := executeCommand("-q", "--dry-run", in)
	require.NoError(t, err)

	assert.Contains(t, stdout, "--- "+in)
	assert.Contains(t, stdout, "+++ "+in+".cleaned")
	assert.Contains(t, stdout, "-Hello, World! 123")
	assert.Contains(t, stdout, "+Hello World ")
	assert.Contains(t, stdout, "1 changed hunk(s)")
	assert.NotContains(t, stdout, "\033[", "no colors when stdout is not a terminal")

	_, statErr := os.Stat(in + ".cleaned")
	assert.ErrorIs(t, statErr, os.ErrNotExist, "dry run must not write")
}

func TestFilter_DryRunAlreadyClean(t *testing.T) {
	in := writeInput(t, "nothing to strip\n")

	stdout, _, err := executeCommand("-q", "--dry-run", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No differences found.")
}

func TestFilter_SummaryJSON(t *testing.T) {
	in := writeInput(t, "ALL-CAPS_and_lower99")

	stdout, _, err := executeCommand("-q", "--summary", "json", in)
	require.NoError(t, err)

	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, in, s.Input)
	assert.Equal(t, in+".cleaned", s.Output)
	assert.Equal(t, int64(20), s.Read)
	assert.Equal(t, int64(15), s.Kept)
	assert.Equal(t, int64(5), s.Dropped)
	assert.False(t, s.DryRun)
}

func TestFilter_SummaryYAMLWithDryRun(t *testing.T) {
	in := writeInput(t, "")

	stdout, _, err := executeCommand("-q", "--dry-run", "--summary", "yaml", in)
	require.NoError(t, err)

	// The diff comes first, then the summary document.
	assert.Contains(t, stdout, "No differences found.")

	doc := stdout[len("No differences found.\n"):]

	var s report.Summary
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	assert.True(t, s.DryRun)
	assert.Zero(t, s.Read)
}

func TestFilter_SummaryText(t *testing.T) {
	in := writeInput(t, "a.b")

	stdout, _, err := executeCommand("-q", "--summary", "text", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kept:")
	assert.Contains(t, stdout, "2 bytes")
}

func TestFilter_DebugLogging(t *testing.T) {
	in := writeInput(t, "abc")

	_, stderr, err := executeCommand("--log-level", "debug", "--log-format", "json", in)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"cleaned file"`)
	assert.Contains(t, stderr, `"kept":3`)
}

func TestFilter_OverwriteWarning(t *testing.T) {
	in := writeInput(t, "abc")
	require.NoError(t, os.WriteFile(in+".cleaned", []byte("stale"), 0o600))

	_, stderr, err := executeCommand(in)
	require.NoError(t, err)
	assert.Contains(t, stderr, "overwriting existing file")

	_, stderr, err = executeCommand("-q", in)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "overwriting existing file")
}

func TestFilter_StdoutFailureIsReported(t *testing.T) {
	in := writeInput(t, "abc")

	cmd := NewRootCommand()
	cmd.SetOut(failingWriter{})
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-q", "--summary", "json", in})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing summary")
	assert.Contains(t, err.Error(), "writing to stdout")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestUseColor(t *testing.T) {
	// Buffers are never terminals.
	assert.False(t, useColor(&bytesWriter{}, config.Default()))
	assert.False(t, useColor(os.Stdout, &config.Config{NoColor: true}))
}

type bytesWriter struct{}

func (bytesWriter) Write(p []byte) (int, error) { return len(p), nil }
