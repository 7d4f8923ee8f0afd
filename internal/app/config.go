package app

import (
	"io"
)

// Config holds the bootstrap settings taken from the command line.
type Config struct {
	// Debug forces debug logging regardless of the configured level
	Debug bool

	// Configuration directory holding config.yaml
	ConfigPath string

	// LogOutput receives log lines (default: stderr)
	LogOutput io.Writer
}

// NewConfig creates a new bootstrap configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
