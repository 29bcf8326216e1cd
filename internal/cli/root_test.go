package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/onlyalpha/internal/runner"
)

// executeCommand is a test helper that runs the CLI with the given args and
// captures both stdout and stderr.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	cmd := NewRootCommand()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

// executeArgs runs ExecuteArgs and returns the exit code and captured streams.
func executeArgs(args ...string) (code int, stdout, stderr string) {
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	code = ExecuteArgs(context.Background(), args, outBuf, errBuf)

	return code, outBuf.String(), errBuf.String()
}

// writeInput writes content to a file in a fresh temp dir and returns its path.
func writeInput(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

// ---------------------------------------------------------------------------
// Help and version
// ---------------------------------------------------------------------------

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "onlyalpha <input_file>")
	assert.Contains(t, stdout, ".cleaned")
	assert.Contains(t, stdout, "onlyalpha -- -notes.txt")

	for _, flag := range []string{
		"--config", "--log-level", "--log-format", "--no-color", "--quiet",
		"--dry-run", "--summary", "--watch", "--debounce", "--version",
	} {
		assert.Contains(t, stdout, flag, "help should mention %q flag", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	stdout, _, err := executeCommand("--version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "onlyalpha dev")
}

// ---------------------------------------------------------------------------
// Usage errors
// ---------------------------------------------------------------------------

func TestRootCommand_NoArgs(t *testing.T) {
	_, _, err := executeCommand()
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFailure, exitErr.Code)
	assert.ErrorIs(t, err, runner.ErrUsage)
	assert.Contains(t, err.Error(), "got 0")
}

func TestRootCommand_TwoArgsTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("a1"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("b2"), 0o600))

	_, _, err := executeCommand(a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrUsage)
	assert.Contains(t, err.Error(), "got 2")

	for _, p := range []string{a, b} {
		_, statErr := os.Stat(p + ".cleaned")
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	}
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, _, err := executeCommand("--nonexistent", "file.txt")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFailure, exitErr.Code)
	assert.ErrorIs(t, err, runner.ErrUsage)
}

func TestRootCommand_SilenceErrors(t *testing.T) {
	_, stderr, err := executeCommand("--nonexistent")
	require.Error(t, err)
	assert.Empty(t, stderr, "cobra should not print errors to stderr (SilenceErrors)")
}

func TestRootCommand_DryRunAndWatchExclusive(t *testing.T) {
	in := writeInput(t, "abc")

	_, _, err := executeCommand("--dry-run", "--watch", in)
	require.Error(t, err)

	_, statErr := os.Stat(in + ".cleaned")
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRootCommand_BadSummaryFormat(t *testing.T) {
	in := writeInput(t, "abc")

	_, _, err := executeCommand("--summary", "xml", in)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrUsage)

	_, statErr := os.Stat(in + ".cleaned")
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRootCommand_NegativeDebounce(t *testing.T) {
	in := writeInput(t, "abc")

	_, _, err := executeCommand("--watch", "--debounce=-1s", in)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrUsage)
}

// ---------------------------------------------------------------------------
// Configuration errors
// ---------------------------------------------------------------------------

func TestRootCommand_InvalidConfig(t *testing.T) {
	in := writeInput(t, "abc")

	_, _, err := executeCommand("--config", "/nonexistent/path.yaml", in)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitFailure, exitErr.Code)
	assert.Contains(t, err.Error(), "reading config file")

	_, statErr := os.Stat(in + ".cleaned")
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, _, err := executeCommand("--log-level", "trace", "file.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRootCommand_InvalidLogFormat(t *testing.T) {
	_, _, err := executeCommand("--log-format", "xml", "file.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestRootCommand_RequiredVersionFromEnv(t *testing.T) {
	// Development builds satisfy any constraint.
	t.Setenv("ONLYALPHA_REQUIRED_VERSION", ">= 99.0")

	in := writeInput(t, "abc")

	_, _, err := executeCommand(in)
	require.NoError(t, err)
}

// ---------------------------------------------------------------------------
// ExecuteArgs
// ---------------------------------------------------------------------------

func TestExecuteArgs_Success(t *testing.T) {
	in := writeInput(t, "Hello, World! 123\n")

	code, stdout, stderr := executeArgs("-q", in)
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, stdout, "stdout is unused without reporting flags")
	assert.Empty(t, stderr)

	got, err := os.ReadFile(in + ".cleaned") //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, "Hello World \n", string(got))
}

func TestExecuteArgs_UsageDiagnostic(t *testing.T) {
	code, stdout, stderr := executeArgs()
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "onlyalpha: invalid usage: expected exactly one input file, got 0")
	assert.Equal(t, 1, bytes.Count([]byte(stderr), []byte("\n")), "diagnostic is a single line")
}

func TestExecuteArgs_MissingInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "nope.txt")

	code, _, stderr := executeArgs(in)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "onlyalpha: error opening file: "+in)

	_, statErr := os.Stat(in + ".cleaned")
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestExecuteArgs_OutputCreateFailure(t *testing.T) {
	in := writeInput(t, "abc")
	require.NoError(t, os.Mkdir(in+".cleaned", 0o750))

	code, _, stderr := executeArgs("-q", in)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "onlyalpha: error creating output file: "+in+".cleaned")
}

func TestExecuteArgs_FileNamedLikeCommand(t *testing.T) {
	// "version" and "help" are plain file names, not subcommands.
	dir := t.TempDir()
	in := filepath.Join(dir, "version")
	require.NoError(t, os.WriteFile(in, []byte("v1.2.3"), 0o600))

	code, _, _ := executeArgs("-q", in)
	require.Equal(t, ExitSuccess, code)

	got, err := os.ReadFile(in + ".cleaned") //nolint:gosec // test
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestExecuteArgs_DashNamedInput(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("-notes", []byte("a-b c!\n"), 0o600))

	code, _, stderr := executeArgs("-notes")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "invalid usage")

	_, statErr := os.Stat("-notes.cleaned")
	require.ErrorIs(t, statErr, os.ErrNotExist)

	code, _, stderr = executeArgs("-q", "--", "-notes")
	require.Equal(t, ExitSuccess, code, stderr)

	got, err := os.ReadFile("-notes.cleaned")
	require.NoError(t, err)
	assert.Equal(t, "ab c\n", string(got))
}

// ---------------------------------------------------------------------------
// ExitError
// ---------------------------------------------------------------------------

func TestExitError_ErrorWithMessage(t *testing.T) {
	err := &ExitError{Code: 1, Err: assert.AnError}
	assert.Contains(t, err.Error(), assert.AnError.Error())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExitError_ErrorWithoutMessage(t *testing.T) {
	err := &ExitError{Code: 42}
	assert.Equal(t, "exit code 42", err.Error())
	assert.Nil(t, err.Unwrap())
}
