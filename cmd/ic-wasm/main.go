// Command ic-wasm runs the prebuilt ic-wasm binary for the host platform.
//
// It defines no flags of its own: every argument is passed to the real
// binary unchanged, and the binary's exit code becomes the launcher's.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/pkg/icwasm"
)

// stdio bundles the launcher's standard streams.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	streams := stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	os.Exit(run(context.Background(), os.Args[1:], streams, os.Getenv))
}

func run(ctx context.Context, args []string, streams stdio, getenv func(string) string, opts ...icwasm.Option) int {
	workDir, _ := os.Getwd()

	cfg, cfgErr := config.Load(ctx, config.LoadOptions{
		Getenv:   getenv,
		WorkDir:  workDir,
		Detector: platform.NewDetector(),
	})
	if !cfg.Color {
		color.NoColor = true
	}

	logger := config.NewLogger(streams.err, cfg)
	if cfgErr != nil {
		logger.Debug("configuration problems ignored", "error", config.FormatError(cfgErr, false))
	}

	launcherOpts := []icwasm.Option{
		icwasm.WithLauncherDir(cfg.LauncherDir),
		icwasm.WithLogger(logger),
		icwasm.WithStdio(streams.in, streams.out, streams.err),
	}
	launcher := icwasm.New(append(launcherOpts, opts...)...)

	code, err := launcher.Run(ctx, args)
	if err != nil {
		printError(streams.err, err)
	}
	return code
}

// printError writes the error and any user hints to w.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(w, "%s %s\n", red.Sprint("Error:"), err.Error())
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s\n", yellow.Sprint(hint))
	}
}
