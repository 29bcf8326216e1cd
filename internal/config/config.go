// Package config provides configuration management for onlyalpha.
//
// Configuration only affects diagnostics (logging, color, version pinning);
// the filtering contract never depends on it. Values are loaded from three
// sources with the following precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (ONLYALPHA_ prefix)
//  3. Config file given with --config
//
// No config file is auto-discovered.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "ONLYALPHA"

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the global configuration for onlyalpha.
type Config struct {
	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel" validate:"oneof=debug info warn error"`

	// LogFormat controls the format of log output.
	// Valid values: text, json.
	LogFormat string `mapstructure:"log-format" json:"logFormat" validate:"oneof=text json"`

	// NoColor disables colored diff output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet suppresses all log output below error level.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// RequiredVersion is an optional semver constraint the running binary
	// must satisfy, e.g. ">= 1.2, < 2".
	RequiredVersion string `mapstructure:"required-version" json:"requiredVersion,omitempty" validate:"omitempty,semverconstraint"`

	// ConfigFile is the resolved path to the config file used.
	// Set by Load, never read from the config itself.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("semverconstraint", isSemverConstraint) //nolint:errcheck // static tag

	return v
}

func isSemverConstraint(fl validator.FieldLevel) bool {
	_, err := semver.NewConstraint(fl.Field().String())
	return err == nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating config: %w", err)
	}

	switch fe := verrs[0]; fe.StructField() {
	case "LogLevel":
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	case "LogFormat":
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.LogFormat)
	case "RequiredVersion":
		return fmt.Errorf("invalid required version %q: not a semver constraint", c.RequiredVersion)
	default:
		return fmt.Errorf("invalid %s: failed %q check", fe.Namespace(), fe.Tag())
	}
}

// EffectiveLogLevel returns the log level to use. When Quiet is true the log
// level is overridden to "error" regardless of the configured LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", LogLevelInfo)
	v.SetDefault("log-format", LogFormatText)
	v.SetDefault("no-color", false)
	v.SetDefault("quiet", false)
	v.SetDefault("required-version", "")
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// configureFile reads an explicitly named config file. The type is taken
// from the extension (yaml, json, toml).
func configureFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		return nil
	}

	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %q: %w", configFile, err)
	}

	return nil
}

// bindFlags walks from cmd up to the root and binds all PersistentFlags.
// Only flags that name a config key end up in Config.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
