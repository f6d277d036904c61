package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Config holds launcher settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// Color enables coloured console output. NO_COLOR always wins.
	Color bool `json:"color"`

	// LauncherDir overrides the directory the launcher binary lives in.
	// Empty means "detect from the running executable".
	LauncherDir string `json:"launcher_dir,omitempty"`

	// Source is the config file that was applied, if any.
	Source string `json:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Color:    true,
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	if err := validateLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Field: luaFieldLogLevel, Message: err.Error()}
	}
	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	default:
		return errors.Newf("unknown log level %q (expected debug, info, warn or error)", level)
	}
}
