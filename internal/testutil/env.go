// Package testutil provides utilities for testing the launcher in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
)

// launcherPackage is the launcher's own package directory, relative to a
// node_modules root.
const launcherPackage = "@icp-sdk/ic-wasm"

// Env is an isolated install layout rooted in a temp directory:
//
//	<Root>/global/lib/node_modules/@icp-sdk/ic-wasm/bin   LauncherDir
//	<Root>/project                                        WorkDir
type Env struct {
	Root        string
	LauncherDir string
	WorkDir     string
}

// SetupTestEnv creates isolated test directories for each test and points
// the launcher's environment variables at them. It ensures tests never pick
// up a config file, log level or launcher directory from the developer's
// machine.
//
// The cleanup function is automatically handled by t.TempDir(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	tmpDir := t.TempDir()
	env := &Env{
		Root:        tmpDir,
		LauncherDir: filepath.Join(tmpDir, "global", "lib", "node_modules", filepath.FromSlash(launcherPackage), "bin"),
		WorkDir:     filepath.Join(tmpDir, "project"),
	}

	t.Setenv(config.EnvLauncherDir, env.LauncherDir)
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvNoColor, "1")

	for _, dir := range []string{env.LauncherDir, env.WorkDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// GlobalModulesDir is where a global install puts sibling scoped packages.
func (e *Env) GlobalModulesDir() string {
	return filepath.Join(e.LauncherDir, "..", "..", "..")
}

// NestedModulesDir is the launcher package's own node_modules.
func (e *Env) NestedModulesDir() string {
	return filepath.Join(e.LauncherDir, "..", "node_modules")
}

// WorkModulesDir is the working directory project's node_modules.
func (e *Env) WorkModulesDir() string {
	return filepath.Join(e.WorkDir, "node_modules")
}

// InstallVariant writes a stub executable at <modulesDir>/<pkg>/bin/<name>
// running script, and returns its path.
func InstallVariant(t *testing.T, modulesDir, pkg, name, script string) string {
	t.Helper()
	path := filepath.Join(modulesDir, filepath.FromSlash(pkg), "bin", name)
	WriteStub(t, path, script)
	return path
}

// WriteStub writes an executable shell script to path, creating parent
// directories. The script body follows a #!/bin/sh line.
func WriteStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write stub %s: %v", path, err)
	}
}

// WriteManifest writes a minimal package.json into dir.
func WriteManifest(t *testing.T, dir, name, version string) {
	t.Helper()
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(map[string]string{
		"name":    name,
		"version": version,
	}, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode manifest: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), data, 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

// SkipOnWindows skips tests that rely on shell stubs.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executable on Windows")
	}
}
