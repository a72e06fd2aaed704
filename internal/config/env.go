// This file contains the environment variable and flag overrides.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *pflag.FlagSet, name string) bool {
	if fs == nil {
		return false
	}
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// override declares one configuration value that can come from the
// environment or from a flag. Both sources go through the same apply
// function.
type override struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string) error
}

// overrides is the declarative table of all environment and flag overrides.
var overrides = []override{
	{"FORMAT", "format", func(c *AppConfig, v string) error {
		c.Format = strings.ToLower(v)
		return nil
	}},
	{"LOG_LEVEL", "log-level", func(c *AppConfig, v string) error {
		c.LogLevel = strings.ToLower(v)
		return nil
	}},
	{"THEME", "theme", func(c *AppConfig, v string) error {
		c.Theme = strings.ToLower(v)
		return nil
	}},
	{"METRICS_FILE", "metrics-file", func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},
	{"TIMEOUT", "timeout", func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = parsed
		return nil
	}},
	{"VERBOSE", "verbose", func(c *AppConfig, v string) error {
		parsed, err := parseBool(v)
		c.Verbose = parsed
		return err
	}},
	{"NO_COLOR", "no-color", func(c *AppConfig, v string) error {
		parsed, err := parseBool(v)
		c.NoColor = parsed
		return err
	}},
}

// parseBool accepts "true", "1", "yes" and "false", "0", "no" in any case.
func parseBool(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return strconv.ParseBool(val)
}

// applyEnvOverrides applies environment variable values for every option whose
// flag was not explicitly set.
//
// Supported environment variables (all prefixed with DOMAINFLOW_):
//   - FORMAT, LOG_LEVEL, THEME, METRICS_FILE, TIMEOUT, VERBOSE, NO_COLOR
//   - CONFIG, read by Load to locate the configuration file
func applyEnvOverrides(cfg *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range overrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(cfg, val); err != nil {
				return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.envKey, val, err)
			}
		}
	}
	return nil
}

// applyFlags applies every flag explicitly set on fs.
func applyFlags(cfg *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range overrides {
		if !isFlagSet(fs, o.flag) {
			continue
		}
		val := fs.Lookup(o.flag).Value.String()
		if err := o.apply(cfg, val); err != nil {
			return apperrors.NewConfigError("invalid --%s=%q: %v", o.flag, val, err)
		}
	}
	return nil
}
