package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "DOMAINFLOW_"

// Output formats understood by the presenters.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultTimeout bounds a single dispatch when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// Formats lists the valid values of AppConfig.Format.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Format selects the presenter: text, json or yaml.
	Format string
	// LogLevel is a zerolog level name (debug, info, warn, error, disabled).
	LogLevel string
	// Verbose forces debug logging regardless of LogLevel.
	Verbose bool
	// NoColor disables styled output.
	NoColor bool
	// Theme names the color theme used by the text presenter.
	Theme string
	// Timeout bounds each dispatch.
	Timeout time.Duration
	// ConfigFile is the TOML file the configuration was read from, if any.
	ConfigFile string
	// MetricsFile receives the dispatch metrics in Prometheus text format
	// when set.
	MetricsFile string
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Format:   FormatText,
		LogLevel: zerolog.LevelInfoValue,
		Theme:    "dark",
		Timeout:  DefaultTimeout,
	}
}

// Level returns the effective log level.
func (c AppConfig) Level() zerolog.Level {
	if c.Verbose {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return apperrors.NewConfigError("unknown output format %q (expected one of %v)", c.Format, Formats)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q: %v", c.LogLevel, err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.NewConfigError("unknown theme %q", c.Theme)
	}
	return nil
}

// RegisterFlags declares the configuration flags on fs with their default
// values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP("format", "f", d.Format, fmt.Sprintf("output format %v", Formats))
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error, disabled)")
	fs.BoolP("verbose", "v", d.Verbose, "enable debug logging")
	fs.Bool("no-color", d.NoColor, "disable colored output")
	fs.String("theme", d.Theme, "color theme (dark, light, none)")
	fs.Duration("timeout", d.Timeout, "maximum duration of a dispatch")
	fs.StringP("config", "c", "", "path to a TOML configuration file")
	fs.String("metrics-file", "", "write dispatch metrics to this file")
}

// Load resolves the configuration from the defaults, the configuration file,
// the environment and the flags explicitly set on fs, in that order.
func Load(fs *pflag.FlagSet) (AppConfig, error) {
	cfg := Default()

	path := lookupSource(fs, "config", "CONFIG")
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
		cfg.ConfigFile = path
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return cfg, err
	}
	if err := applyFlags(&cfg, fs); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// lookupSource returns the flag value when it was set, the environment value
// otherwise.
func lookupSource(fs *pflag.FlagSet, flagName, envKey string) string {
	if isFlagSet(fs, flagName) {
		return fs.Lookup(flagName).Value.String()
	}
	return getEnvString(envKey, "")
}
