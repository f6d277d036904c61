package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
)

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// WorkDir is searched for DefaultFileName. Empty disables the lookup.
	WorkDir string
	// Detector feeds the Lua platform table. Nil leaves it out.
	Detector platform.Detector
	// EvalTimeout bounds the config file run. Zero means DefaultEvalTimeout.
	EvalTimeout time.Duration
}

// Load builds the effective config from defaults, the config file and the
// environment. It always returns a usable Config: a file or variable that
// cannot be applied is skipped and reported through the returned error.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	var problems error

	if path := configPath(getenv, opts.WorkDir); path != "" {
		parsed, err := NewParser(opts.Detector).WithTimeout(opts.EvalTimeout).ParseFile(ctx, path)
		if err != nil {
			problems = errors.CombineErrors(problems, errors.Wrapf(err, "ignoring config file %s", path))
		} else {
			cfg = parsed
		}
	}

	if level := strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))); level != "" {
		if err := validateLogLevel(level); err != nil {
			problems = errors.CombineErrors(problems, errors.Wrapf(err, "ignoring %s", EnvLogLevel))
		} else {
			cfg.LogLevel = level
		}
	}

	if getenv(EnvNoColor) != "" {
		cfg.Color = false
	}

	if dir := getenv(EnvLauncherDir); dir != "" {
		cfg.LauncherDir = filepath.Clean(dir)
	}

	return cfg, problems
}

// configPath returns the explicit config file, or DefaultFileName in workDir
// when it exists.
func configPath(getenv func(string) string, workDir string) string {
	if path := getenv(EnvConfigFile); path != "" {
		return path
	}
	if workDir == "" {
		return ""
	}
	candidate := filepath.Join(workDir, DefaultFileName)
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate
	}
	return ""
}
