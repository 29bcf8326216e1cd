package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hupe1980/onlyalpha/internal/config"
	"github.com/hupe1980/onlyalpha/internal/logging"
	"github.com/hupe1980/onlyalpha/internal/output"
	"github.com/hupe1980/onlyalpha/internal/preview"
	"github.com/hupe1980/onlyalpha/internal/report"
	"github.com/hupe1980/onlyalpha/internal/runner"
	"github.com/hupe1980/onlyalpha/internal/watch"
)

func runFilter(ctx context.Context, cmd *cobra.Command, input string, opts *filterOptions) error {
	var formatter report.Formatter

	if opts.summary != "" {
		f, err := report.NewFormatter(opts.summary)
		if err != nil {
			return runner.NewUsageError(err)
		}

		formatter = f
	}

	if opts.debounce < 0 {
		return runner.NewUsageError(fmt.Errorf("--debounce must not be negative, got %s", opts.debounce))
	}

	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)
	stdout := output.NewStdoutWriter(cmd.OutOrStdout())
	color := useColor(cmd.OutOrStdout(), cfg)

	runOnce := func(ctx context.Context) (*runner.Result, error) {
		res, err := runner.Run(ctx, input, runner.Options{
			DryRun: opts.dryRun,
			Logger: logger,
		})
		if err != nil {
			return res, err
		}

		if opts.dryRun {
			if err := writePreview(stdout, res, color); err != nil {
				return res, err
			}
		}

		if formatter != nil {
			if err := formatter.Format(stdout, report.FromResult(res)); err != nil {
				return res, fmt.Errorf("writing summary: %w", err)
			}
		}

		return res, nil
	}

	if opts.watch {
		return watch.Run(ctx, watch.Options{
			Path:     input,
			Debounce: opts.debounce,
			Logger:   logger,
			Out:      cmd.ErrOrStderr(),
		}, runOnce)
	}

	_, err := runOnce(ctx)

	return err
}

func writePreview(w io.Writer, res *runner.Result, color bool) error {
	diffOpts := preview.DefaultOptions()
	diffOpts.OldLabel = res.InputPath
	diffOpts.NewLabel = res.OutputPath

	diff, err := preview.Compute(res.Original, res.Cleaned, diffOpts)
	if err != nil {
		return err
	}

	if err := preview.Write(w, diff, color); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}

	return nil
}

// useColor enables ANSI colors only for terminals and only when not
// disabled by configuration.
func useColor(w io.Writer, cfg *config.Config) bool {
	if cfg.NoColor {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
