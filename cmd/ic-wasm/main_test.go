package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/testutil"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
	"github.com/icp-sdk/ic-wasm-launcher/pkg/icwasm"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type captured struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (c *captured) streams(stdin string) stdio {
	return stdio{in: strings.NewReader(stdin), out: &c.stdout, err: &c.stderr}
}

func TestRun_UnsupportedPlatform(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	var c captured
	code := run(context.Background(), []string{"--help"}, c.streams(""), os.Getenv,
		icwasm.WithPlatform("linux-ppc64"), icwasm.WithWorkDir(env.WorkDir))

	if code == 0 {
		t.Fatal("run() = 0 for an unsupported platform")
	}
	if code != icwasm.ExitLaunchFailure {
		t.Errorf("run() = %d, want %d", code, icwasm.ExitLaunchFailure)
	}

	errOut := c.stderr.String()
	if !strings.Contains(errOut, "unsupported platform: linux-ppc64") {
		t.Errorf("stderr = %q, want the unsupported key", errOut)
	}
	for _, key := range variant.Supported() {
		if !strings.Contains(errOut, key.String()) {
			t.Errorf("stderr = %q, missing supported key %s", errOut, key)
		}
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	var c captured
	code := run(context.Background(), nil, c.streams(""), os.Getenv,
		icwasm.WithPlatform("linux-x64"), icwasm.WithWorkDir(env.WorkDir))

	if code != icwasm.ExitLaunchFailure {
		t.Errorf("run() = %d, want %d", code, icwasm.ExitLaunchFailure)
	}

	errOut := c.stderr.String()
	for _, want := range []string{
		"Error: could not find ic-wasm binary for linux-x64",
		"@icp-sdk/ic-wasm-linux-x64",
		"npm install --force",
		filepath.Join(env.WorkDir, "node_modules"),
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr = %q, missing %q", errOut, want)
		}
	}
}

func TestRun_ExitCode(t *testing.T) {
	testutil.SkipOnWindows(t)
	env := testutil.SetupTestEnv(t)
	testutil.InstallVariant(t, env.GlobalModulesDir(), "@icp-sdk/ic-wasm-linux-x64", "ic-wasm", "exit 3")

	var c captured
	code := run(context.Background(), nil, c.streams(""), os.Getenv,
		icwasm.WithPlatform("linux-x64"), icwasm.WithWorkDir(env.WorkDir))

	if code != 3 {
		t.Errorf("run() = %d, want 3", code)
	}
	if c.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing from the launcher", c.stderr.String())
	}
}

func TestRun_ForwardsArgumentsAndStreams(t *testing.T) {
	testutil.SkipOnWindows(t)
	env := testutil.SetupTestEnv(t)
	testutil.InstallVariant(t, env.WorkModulesDir(), "@icp-sdk/ic-wasm-darwin-arm64", "ic-wasm",
		`for a in "$@"; do printf '<%s>\n' "$a"; done; cat`)

	// Flags that look like launcher flags must reach the child untouched.
	args := []string{"--version", "-h", "input.wasm", "-o", "out.wasm", "metadata", "candid:service", "-d", "a b"}

	var c captured
	code := run(context.Background(), args, c.streams("stdin data"), os.Getenv,
		icwasm.WithPlatform("darwin-arm64"), icwasm.WithWorkDir(env.WorkDir))
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, c.stderr.String())
	}

	var want strings.Builder
	for _, a := range args {
		want.WriteString("<" + a + ">\n")
	}
	want.WriteString("stdin data")

	if c.stdout.String() != want.String() {
		t.Errorf("stdout = %q, want %q", c.stdout.String(), want.String())
	}
}

func TestRun_BrokenConfigDoesNotBlockLaunch(t *testing.T) {
	testutil.SkipOnWindows(t)
	env := testutil.SetupTestEnv(t)
	testutil.InstallVariant(t, env.WorkModulesDir(), "@icp-sdk/ic-wasm-linux-x64", "ic-wasm", "exit 0")

	configPath := filepath.Join(t.TempDir(), "broken.lua")
	if err := os.WriteFile(configPath, []byte("launcher = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigFile, configPath)
	t.Setenv(config.EnvLogLevel, "bogus")

	var c captured
	code := run(context.Background(), nil, c.streams(""), os.Getenv,
		icwasm.WithPlatform("linux-x64"), icwasm.WithWorkDir(env.WorkDir))
	if code != 0 {
		t.Errorf("run() = %d, want 0; stderr %q", code, c.stderr.String())
	}
	if c.stderr.Len() != 0 {
		t.Errorf("stderr = %q, config problems are debug-only", c.stderr.String())
	}
}

func TestRun_DebugLogging(t *testing.T) {
	testutil.SkipOnWindows(t)
	env := testutil.SetupTestEnv(t)
	testutil.InstallVariant(t, env.WorkModulesDir(), "@icp-sdk/ic-wasm-linux-x64", "ic-wasm", "exit 0")
	t.Setenv(config.EnvLogLevel, "debug")

	var c captured
	code := run(context.Background(), nil, c.streams(""), os.Getenv,
		icwasm.WithPlatform("linux-x64"), icwasm.WithWorkDir(env.WorkDir))
	if code != 0 {
		t.Fatalf("run() = %d", code)
	}
	if !strings.Contains(c.stderr.String(), "resolved binary") {
		t.Errorf("stderr = %q, want debug resolution log", c.stderr.String())
	}
}

func TestRun_RunawayConfigDoesNotBlockLaunch(t *testing.T) {
	testutil.SkipOnWindows(t)

	tests := []struct {
		name string
		code string
	}{
		{"endless loop", `while true do end`},
		{"huge allocation", `local s = string.rep("x", 1e10)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.SetupTestEnv(t)
			marker := filepath.Join(t.TempDir(), "ran")
			testutil.InstallVariant(t, env.WorkModulesDir(), "@icp-sdk/ic-wasm-linux-x64", "ic-wasm",
				"touch '"+marker+"'")

			if err := os.WriteFile(filepath.Join(env.WorkDir, config.DefaultFileName), []byte(tt.code), 0o644); err != nil {
				t.Fatal(err)
			}
			t.Chdir(env.WorkDir)

			done := make(chan int, 1)
			go func() {
				var c captured
				done <- run(context.Background(), nil, c.streams(""), os.Getenv,
					icwasm.WithPlatform("linux-x64"), icwasm.WithWorkDir(env.WorkDir))
			}()

			select {
			case code := <-done:
				if code != 0 {
					t.Errorf("run() = %d, want 0", code)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("launcher still evaluating config after 10s")
			}
			if _, err := os.Stat(marker); err != nil {
				t.Errorf("child did not run: %v", err)
			}
		})
	}
}
