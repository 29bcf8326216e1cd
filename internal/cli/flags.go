package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// defaultDebounce is the quiet period used by --watch.
const defaultDebounce = 500 * time.Millisecond

type filterOptions struct {
	// Print a diff instead of writing the output file.
	dryRun bool

	// Summary format: "" (off), text, json, yaml.
	summary string

	// Re-run on every change of the input file.
	watch    bool
	debounce time.Duration
}

// registerGlobalFlags adds the persistent logging and config flags to a
// cobra command. Their values are read back through viper in config.Load.
func registerGlobalFlags(cmd *cobra.Command, cfgFile *string) {
	pf := cmd.PersistentFlags()
	pf.StringVar(cfgFile, "config", "", "config file for logging and version settings (yaml, json or toml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored diff output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
}

// registerFilterFlags adds the filter run flags to a cobra command.
func registerFilterFlags(cmd *cobra.Command, opts *filterOptions) {
	f := cmd.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", false, "print a diff of the changes instead of writing the output file")
	f.StringVar(&opts.summary, "summary", "", "print a run summary to stdout: text, json, yaml")
	f.BoolVarP(&opts.watch, "watch", "w", false, "re-run whenever the input file changes")
	f.DurationVar(&opts.debounce, "debounce", defaultDebounce, "debounce interval for --watch")

	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
}
