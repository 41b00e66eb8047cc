package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`           // debug, info, warn, error
	Path  string `yaml:"path" json:"path,omitempty"`   // log file; empty = stderr
	Debug bool   `yaml:"debug" json:"debug,omitempty"` // development encoder, debug level
}

// DefaultLoggingConfig logs info and above to stderr.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: "info"}
}

func (c LoggingConfig) validate() []error {
	if c.Level == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return []error{fmt.Errorf("logging: %w", err)}
	}
	return nil
}
