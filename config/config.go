// Package config holds the aestrace command line settings.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the aestrace configuration. Fields map to TOML keys.
type Config struct {
	LogLevel string `toml:"log_level"`
	// Strict rejects keys and plaintexts that do not decode to 16 bytes.
	Strict bool   `toml:"strict"`
	Format string `toml:"format"`

	Avalanche AvalancheConfig `toml:"avalanche"`
}

// AvalancheConfig configures the avalanche command.
type AvalancheConfig struct {
	Trials  int    `toml:"trials"`
	Workers int    `toml:"workers"`
	Seed    uint64 `toml:"seed"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "INFO",
		Strict:   true,
		Format:   "text",
		Avalanche: AvalancheConfig{
			Trials:  1000,
			Workers: runtime.NumCPU(),
			Seed:    1,
		},
	}
}

// LoadTOML reads path on top of the defaults and validates the result.
func LoadTOML(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: want DEBUG, INFO, WARN or ERROR", c.LogLevel))
	}
	switch c.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("format %q: want text or json", c.Format))
	}
	if c.Avalanche.Trials <= 0 {
		errs = append(errs, fmt.Errorf("avalanche.trials must be positive, got %d", c.Avalanche.Trials))
	}
	if c.Avalanche.Workers <= 0 {
		errs = append(errs, fmt.Errorf("avalanche.workers must be positive, got %d", c.Avalanche.Workers))
	}
	return errors.Join(errs...)
}
