package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// fileConfig mirrors the TOML layout. Pointers distinguish absent keys from
// zero values.
type fileConfig struct {
	Format      *string `toml:"format"`
	LogLevel    *string `toml:"log_level"`
	Verbose     *bool   `toml:"verbose"`
	NoColor     *bool   `toml:"no_color"`
	Theme       *string `toml:"theme"`
	Timeout     *string `toml:"timeout"`
	MetricsFile *string `toml:"metrics_file"`
}

// LoadFile reads the TOML file at path and applies the keys it defines to cfg.
// Unknown keys are rejected.
func LoadFile(path string, cfg *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.NewConfigError("configuration file %s does not exist", path)
		}
		return apperrors.NewConfigError("opening configuration file %s: %v", path, err)
	}
	defer f.Close()

	var fc fileConfig
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return apperrors.NewConfigError("parsing configuration file %s: %v", path, err)
	}
	return fc.applyTo(cfg)
}

func (fc fileConfig) applyTo(cfg *AppConfig) error {
	if fc.Format != nil {
		cfg.Format = *fc.Format
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.NoColor != nil {
		cfg.NoColor = *fc.NoColor
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.MetricsFile != nil {
		cfg.MetricsFile = *fc.MetricsFile
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in configuration file: %v", *fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}
