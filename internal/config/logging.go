package config

import "github.com/rshade/pybites-search/internal/logging"

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	// Level is a zerolog level name (default: warn).
	Level string `yaml:"level,omitempty"`

	// Format is "console" (default) or "json".
	Format string `yaml:"format,omitempty"`
}

// DefaultLoggingConfig returns quiet console logging.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: logging.DefaultLevel, Format: logging.FormatConsole}
}

// ToLoggingConfig converts to the logging package's Config.
// Debug level turns on caller information.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Caller: lc.Level == "debug" || lc.Level == "trace",
	}
}
