// Package install checks, right after the package manager installed the
// launcher, that the variant for this host is present and runnable.
//
// Verification never fails: every outcome becomes a Report, and the install
// hook exits zero whatever the report says.
package install

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/binary"
	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/npm"
	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// Status is the outcome of a verification.
type Status int

const (
	// StatusInstalled means the binary was found.
	StatusInstalled Status = iota
	// StatusUnsupported means the host has no variant.
	StatusUnsupported
	// StatusBinaryMissing means the variant package exists but holds no binary.
	StatusBinaryMissing
	// StatusPackageMissing means the variant package is not installed.
	StatusPackageMissing
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusUnsupported:
		return "unsupported"
	case StatusBinaryMissing:
		return "binary-missing"
	case StatusPackageMissing:
		return "package-missing"
	default:
		return "unknown"
	}
}

// OK reports whether the binary is ready to use.
func (s Status) OK() bool {
	return s == StatusInstalled
}

// Report describes the install state for the host.
type Report struct {
	Status  Status
	Key     platform.Key
	Variant variant.ID // empty when unsupported

	// BinaryPath is set when Status is StatusInstalled.
	BinaryPath string

	// Host is a human description of the machine, when it could be detected.
	Host string

	VariantVersion  string
	LauncherVersion string

	// Notes are advisory findings that do not change Status.
	Notes []string
}

// Verifier produces install Reports.
type Verifier struct {
	Resolver *binary.Resolver

	// Detector describes the host in the report. Nil skips the description.
	Detector platform.Detector

	// LauncherVersion is compared with the variant's package version.
	LauncherVersion string

	Logger config.Logger

	chmod func(string) error
}

// NewVerifier creates a Verifier that repairs permissions with binary.SetExecutable.
func NewVerifier(resolver *binary.Resolver, logger config.Logger) *Verifier {
	if logger == nil {
		logger = config.NopLogger()
	}
	return &Verifier{
		Resolver: resolver,
		Logger:   logger,
		chmod:    binary.SetExecutable,
	}
}

// Verify resolves the variant for the host, makes a found binary executable
// and describes the result.
func (v *Verifier) Verify(ctx context.Context) *Report {
	logger := v.Logger
	if logger == nil {
		logger = config.NopLogger()
	}

	res := v.Resolver.Resolve()
	report := &Report{
		Key:             res.Key,
		Variant:         res.Variant,
		LauncherVersion: v.LauncherVersion,
		Host:            v.describeHost(ctx, logger),
	}

	switch {
	case errors.Is(res.Err, variant.ErrUnsupportedPlatform):
		report.Status = StatusUnsupported
		return report
	case res.Err != nil:
		report.Status = StatusPackageMissing
		if res.Search.PackageFound() {
			report.Status = StatusBinaryMissing
		}
		logger.Debug("variant binary missing", "status", report.Status, "searched", res.Search.SearchedPaths())
		return report
	}

	report.Status = StatusInstalled
	report.BinaryPath = res.Search.Path

	v.repairPermissions(report, logger)
	v.inspectManifest(report, res.Search.PackageDir, logger)

	return report
}

func (v *Verifier) describeHost(ctx context.Context, logger config.Logger) string {
	if v.Detector == nil {
		return ""
	}
	info, err := v.Detector.Detect(ctx)
	if err != nil {
		logger.Debug("host detection failed", "error", err)
		return ""
	}
	return info.Describe()
}

// repairPermissions is best effort; the current user may not own the file.
// A binary left without execute permission gets a note in the report.
func (v *Verifier) repairPermissions(report *Report, logger config.Logger) {
	chmod := v.chmod
	if chmod == nil {
		chmod = binary.SetExecutable
	}
	path := report.BinaryPath
	err := chmod(path)
	if err == nil {
		return
	}
	logger.Debug("could not set execute permission", "path", path, "error", err)

	ok, statErr := binary.IsExecutable(path)
	if statErr != nil {
		logger.Debug("could not inspect binary", "path", path, "error", statErr)
		return
	}
	if !ok {
		report.Notes = append(report.Notes,
			fmt.Sprintf("Binary is not executable and could not be fixed. Try: chmod +x %s", path))
	}
}

func (v *Verifier) inspectManifest(report *Report, packageDir string, logger config.Logger) {
	manifest, err := npm.ReadManifest(packageDir)
	if err != nil {
		logger.Debug("variant manifest unavailable", "dir", packageDir, "error", err)
		return
	}
	report.VariantVersion = manifest.Version

	if !manifest.SupportsPlatform(report.Key.OS(), report.Key.Arch()) {
		report.Notes = append(report.Notes,
			fmt.Sprintf("Package %s does not declare support for %s.", report.Variant, report.Key))
	}

	if report.LauncherVersion == "" || manifest.Version == "" {
		return
	}
	same, err := npm.SameVersion(report.LauncherVersion, manifest.Version)
	if err != nil {
		logger.Debug("version comparison skipped", "error", err)
		return
	}
	if !same {
		report.Notes = append(report.Notes,
			fmt.Sprintf("Package version %s differs from launcher version %s.", manifest.Version, report.LauncherVersion))
	}
}
