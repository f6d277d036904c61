// Package platform derives the host's platform key and reports host details.
//
// Keys use the package-manager vocabulary ("darwin", "linux", "win32" for the
// operating system family and "arm64", "x64", "ia32" for the CPU) so they can be
// looked up directly in the variant registry. Full host information, including
// the Linux distribution detected through gopsutil, is only gathered on request
// and never on the dispatch path.
package platform

import (
	"context"
	"strings"
)

// Operating system families in the package-manager vocabulary.
const (
	OSDarwin  = "darwin"
	OSLinux   = "linux"
	OSWindows = "win32"
)

// CPU architectures in the package-manager vocabulary.
const (
	ArchX64   = "x64"
	ArchARM64 = "arm64"
	ArchIA32  = "ia32"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

const keySeparator = "-"

// Key identifies a host as "{os}-{arch}", e.g. "linux-x64".
type Key string

// NewKey joins an OS family and an architecture into a Key.
// The values are used as given; they must already be in the registry vocabulary.
func NewKey(os, arch string) Key {
	return Key(os + keySeparator + arch)
}

// String returns the string representation of the key.
func (k Key) String() string {
	return string(k)
}

// OS returns the operating system part of the key.
func (k Key) OS() string {
	os, _, _ := strings.Cut(string(k), keySeparator)
	return os
}

// Arch returns the architecture part of the key.
func (k Key) Arch() string {
	_, arch, _ := strings.Cut(string(k), keySeparator)
	return arch
}

// Info contains platform detection information.
type Info struct {
	OS         string // "darwin", "linux", "win32"
	Arch       string // "x64", "arm64"
	GOOS       string // runtime.GOOS
	GOARCH     string // runtime.GOARCH
	KernelArch string // as reported by the kernel, e.g. "x86_64" (may be empty)
	Platform   string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family     string // canonical family (e.g., "debian", "rhel", "arch")
	Version    string // distro version (Linux only, e.g., "22.04")
}

// Distro contains Linux distribution information.
// This is nil on non-Linux platforms.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// Key returns the platform key for this host.
func (i *Info) Key() Key {
	return NewKey(i.OS, i.Arch)
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSDarwin
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsX64 returns true if the architecture is x64.
func (i *Info) IsX64() bool {
	return i.Arch == ArchX64
}

// IsARM64 returns true if the architecture is arm64.
func (i *Info) IsARM64() bool {
	return i.Arch == ArchARM64
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + arm64).
func (i *Info) IsAppleSilicon() bool {
	return i.OS == OSDarwin && i.Arch == ArchARM64
}

// Describe returns a one-line description of the host for diagnostics,
// e.g. "ubuntu 22.04 (debian), kernel x86_64".
func (i *Info) Describe() string {
	var parts []string
	if d := i.GetDistro(); d != nil {
		desc := d.ID
		if d.Version != "" {
			desc += " " + d.Version
		}
		if d.Family != "" && d.Family != d.ID {
			desc += " (" + d.Family + ")"
		}
		parts = append(parts, desc)
	} else {
		parts = append(parts, i.GOOS+"/"+i.GOARCH)
	}
	if i.KernelArch != "" {
		parts = append(parts, "kernel "+i.KernelArch)
	}
	return strings.Join(parts, ", ")
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
