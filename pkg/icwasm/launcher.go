// Package icwasm locates and runs the prebuilt ic-wasm binary for the host.
//
// A Launcher resolves the binary at most once; every accessor shares that
// result. Use it from Go programs that need the path of the ic-wasm
// executable without shelling out to the launcher:
//
//	l := icwasm.New()
//	path, err := l.BinaryPath()
package icwasm

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/icp-sdk/ic-wasm-launcher/internal/binary"
	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/dispatch"
	"github.com/icp-sdk/ic-wasm-launcher/internal/install"
	"github.com/icp-sdk/ic-wasm-launcher/internal/npm"
	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// Version will be set at build time via -ldflags. It is used when the
// launcher's own package.json cannot be read.
var Version = "0.0.0-dev"

// ExitLaunchFailure is the exit code Run returns when the binary could not be
// resolved or started.
const ExitLaunchFailure = dispatch.ExitLaunchFailure

// Searcher finds a variant binary on disk.
type Searcher = binary.Searcher

// Launcher resolves and runs the ic-wasm binary for one platform.
type Launcher struct {
	key         platform.Key
	launcherDir string
	workDir     string
	logger      config.Logger
	detector    platform.Detector
	searcher    Searcher

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	resolver *binary.Resolver

	versionOnce sync.Once
	version     string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithPlatform overrides the detected platform key.
func WithPlatform(key platform.Key) Option {
	return func(l *Launcher) { l.key = key }
}

// WithLauncherDir sets the directory the launcher is installed in.
func WithLauncherDir(dir string) Option {
	return func(l *Launcher) { l.launcherDir = dir }
}

// WithWorkDir sets the directory whose node_modules is searched last.
func WithWorkDir(dir string) Option {
	return func(l *Launcher) { l.workDir = dir }
}

// WithLogger sets the logger for resolution and dispatch diagnostics.
func WithLogger(logger config.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// WithDetector sets the host detector used by Verify.
func WithDetector(d platform.Detector) Option {
	return func(l *Launcher) { l.detector = d }
}

// WithSearcher replaces the filesystem search.
func WithSearcher(s Searcher) Option {
	return func(l *Launcher) { l.searcher = s }
}

// WithStdio sets the streams Run connects to the child.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// New creates a Launcher for the current host.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		key:    platform.Current(),
		logger: config.NopLogger(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = config.NopLogger()
	}

	if l.searcher == nil {
		loc, err := binary.DefaultLocator(l.launcherDir)
		if err != nil {
			l.logger.Debug("launcher paths incomplete", "error", err)
		}
		if l.workDir != "" {
			loc.WorkDir = l.workDir
		}
		l.launcherDir = loc.LauncherDir
		l.workDir = loc.WorkDir
		l.searcher = loc
	}

	l.resolver = binary.NewResolver(l.key, l.searcher, l.logger)
	return l
}

// Platform returns the platform key the Launcher resolves for.
func (l *Launcher) Platform() platform.Key {
	return l.resolver.Key()
}

// Package returns the variant package for the platform.
func (l *Launcher) Package() (string, bool) {
	id, ok := variant.Lookup(l.resolver.Key())
	return id.String(), ok
}

// Version returns the launcher version from its package.json, falling back
// to the build-time Version.
func (l *Launcher) Version() string {
	l.versionOnce.Do(func() {
		l.version = Version
		if l.launcherDir == "" {
			return
		}
		manifest, err := npm.ReadManifest(filepath.Join(l.launcherDir, ".."))
		if err != nil {
			l.logger.Debug("launcher manifest unavailable", "error", err)
			return
		}
		if _, err := npm.ParseVersion(manifest.Version); err != nil {
			l.logger.Debug("launcher manifest version ignored", "error", err)
			return
		}
		l.version = manifest.Version
	})
	return l.version
}

// BinaryPath returns the path of the ic-wasm binary. The search runs on the
// first call; later calls return the same path or the same error.
func (l *Launcher) BinaryPath() (string, error) {
	return l.resolver.BinaryPath()
}

// LookupBinaryPath is BinaryPath for callers that only need to know whether
// the binary is available.
func (l *Launcher) LookupBinaryPath() (string, bool) {
	return l.resolver.LookupBinaryPath()
}

// Run resolves the binary and runs it with args, returning the exit code the
// caller should exit with. The error is non-nil only when the binary could
// not be resolved or started, in which case the code is ExitLaunchFailure.
func (l *Launcher) Run(ctx context.Context, args []string) (int, error) {
	path, err := l.BinaryPath()
	if err != nil {
		return ExitLaunchFailure, err
	}

	d := dispatch.New(l.logger)
	d.Stdin = l.stdin
	d.Stdout = l.stdout
	d.Stderr = l.stderr
	return d.Dispatch(ctx, path, args)
}

// Verify checks the installation for the platform and repairs a missing
// execute permission. It never fails.
func (l *Launcher) Verify(ctx context.Context) *install.Report {
	v := install.NewVerifier(l.resolver, l.logger)
	v.Detector = l.detector
	v.LauncherVersion = l.Version()
	return v.Verify(ctx)
}
