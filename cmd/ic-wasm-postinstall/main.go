// Command ic-wasm-postinstall checks the ic-wasm installation after the
// package manager has installed the launcher.
//
// It prints a report and always exits 0 so a missing optional platform
// package never fails the surrounding install.
package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/install"
	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/pkg/icwasm"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Getenv))
}

func run(ctx context.Context, stdout, stderr io.Writer, getenv func(string) string, opts ...icwasm.Option) int {
	workDir, _ := os.Getwd()
	detector := platform.NewDetector()

	cfg, cfgErr := config.Load(ctx, config.LoadOptions{
		Getenv:   getenv,
		WorkDir:  workDir,
		Detector: detector,
	})
	if !cfg.Color {
		color.NoColor = true
	}

	logger := config.NewLogger(stderr, cfg)
	if cfgErr != nil {
		logger.Debug("configuration problems ignored", "error", config.FormatError(cfgErr, false))
	}

	launcherOpts := []icwasm.Option{
		icwasm.WithLauncherDir(cfg.LauncherDir),
		icwasm.WithLogger(logger),
		icwasm.WithDetector(detector),
	}
	launcher := icwasm.New(append(launcherOpts, opts...)...)

	report := launcher.Verify(ctx)
	if report.Status.OK() {
		logger.Info("install verified", "key", report.Key, "path", report.BinaryPath)
	} else {
		logger.Info("install incomplete", "status", report.Status, "key", report.Key)
	}

	if err := install.Print(stdout, report); err != nil {
		logger.Debug("could not print install report", "error", err)
	}
	return 0
}
