// Package cli implements the cobra command for onlyalpha.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/onlyalpha/internal/config"
	"github.com/hupe1980/onlyalpha/internal/logging"
	"github.com/hupe1980/onlyalpha/internal/runner"
	"github.com/hupe1980/onlyalpha/internal/version"
)

// Process exit codes. Every failure maps to ExitFailure; diagnostics tell
// the causes apart.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the command with the process arguments and returns the exit
// code.
func Execute() int {
	return ExecuteArgs(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command with explicit arguments and streams. A
// failure is reported as a single "onlyalpha: ..." line on stderr.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	_, _ = fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// NewRootCommand constructs the onlyalpha command. The command has no
// subcommands so that any file name, including "help" or "version", is
// accepted as the input path.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "onlyalpha <input_file>",
		Short: "Strip a text file down to letters, spaces and newlines",
		Long: `onlyalpha reads a text file and writes a copy that keeps only the
ASCII letters A-Z and a-z, spaces and newlines. Every other byte is
discarded; kept bytes are copied unchanged and in order.

The copy is written next to the input as <input_file>.cleaned. An
existing file of that name is overwritten.

An input whose name starts with a dash is read as a flag. Put -- before
it to pass it as the input path:
  onlyalpha -- -notes.txt

Exit codes:
  0  Success
  1  Usage error, unreadable input, unwritable output, or I/O failure`,
		Version:       version.GetInfo().String(),
		Args:          exactlyOneInput,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}

			if err := version.GetInfo().Satisfies(cfg.RequiredVersion); err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	registerGlobalFlags(cmd, &cfgFile)
	registerFilterFlags(cmd, opts)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitFailure, Err: runner.NewUsageError(err)}
	})

	return cmd
}

// exactlyOneInput rejects any invocation without exactly one input path.
func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}

	return &ExitError{
		Code: ExitFailure,
		Err:  runner.NewUsageError(fmt.Errorf("expected exactly one input file, got %d (usage: %s)", len(args), cmd.UseLine())),
	}
}
