// Package config loads the slime-finder configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// LogLevelEnv overrides logging.level when set.
const LogLevelEnv = "SLIME_FINDER_LOG_LEVEL"

// Config is the root configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search" json:"search"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Search:  DefaultSearchConfig(),
		Report:  DefaultReportConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// Load reads a YAML configuration file over the defaults. A missing file
// yields the defaults. Environment overrides are applied and the result is
// validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(LogLevelEnv); level != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(level))
	}
}

// Validate checks every section. The returned error wraps ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	errs = append(errs, c.Search.validate()...)
	errs = append(errs, c.Report.validate()...)
	errs = append(errs, c.Logging.validate()...)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
