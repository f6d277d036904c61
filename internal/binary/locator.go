package binary

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/kardianos/osext"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// BaseName is the executable name shared by every variant.
const BaseName = "ic-wasm"

// windowsSuffix is appended to BaseName on win32 hosts.
const windowsSuffix = ".exe"

// BinaryName returns the executable file name for an OS family in the
// package-manager vocabulary.
func BinaryName(hostOS string) string {
	if hostOS == platform.OSWindows {
		return BaseName + windowsSuffix
	}
	return BaseName
}

// candidateBuilder derives the variant package directory for one topology.
// An empty result means the topology does not apply.
type candidateBuilder struct {
	topology   Topology
	packageDir func(l *Locator, pkg string) string
}

// candidateBuilders is the fixed search order.
var candidateBuilders = []candidateBuilder{
	{
		topology: TopologyGlobalSibling,
		packageDir: func(l *Locator, pkg string) string {
			if l.LauncherDir == "" {
				return ""
			}
			return filepath.Join(l.LauncherDir, "..", "..", "..", pkg)
		},
	},
	{
		topology: TopologyLocalNested,
		packageDir: func(l *Locator, pkg string) string {
			if l.LauncherDir == "" {
				return ""
			}
			return filepath.Join(l.LauncherDir, "..", "node_modules", pkg)
		},
	},
	{
		topology: TopologyWorkingDir,
		packageDir: func(l *Locator, pkg string) string {
			if l.WorkDir == "" {
				return ""
			}
			return filepath.Join(l.WorkDir, "node_modules", pkg)
		},
	},
}

// Locator searches the install layouts for a variant binary.
type Locator struct {
	// LauncherDir is the directory holding the launcher executable.
	LauncherDir string
	// WorkDir is the process working directory.
	WorkDir string

	stat func(string) (fs.FileInfo, error)
}

// NewLocator creates a Locator for the given directories. Either may be empty,
// which disables the candidates derived from it.
func NewLocator(launcherDir, workDir string) *Locator {
	return &Locator{
		LauncherDir: launcherDir,
		WorkDir:     workDir,
		stat:        os.Stat,
	}
}

// DefaultLocator creates a Locator for the running process. launcherDir
// overrides the detected launcher directory when non-empty.
//
// The returned Locator is always usable. A directory that could not be
// determined is left empty and reported through the error.
func DefaultLocator(launcherDir string) (*Locator, error) {
	var problems error

	if launcherDir == "" {
		dir, err := DefaultLauncherDir()
		if err != nil {
			problems = errors.CombineErrors(problems, err)
		}
		launcherDir = dir
	}

	workDir, err := os.Getwd()
	if err != nil {
		problems = errors.CombineErrors(problems, errors.Wrap(err, "get working directory"))
		workDir = ""
	}

	return NewLocator(launcherDir, workDir), problems
}

// DefaultLauncherDir returns the directory of the running executable with
// symlinks resolved, so a launcher linked into a bin directory still finds the
// packages next to its real location.
func DefaultLauncherDir() (string, error) {
	exe, err := osext.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate launcher executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Candidates returns the ordered candidate paths for a variant on an OS family.
func (l *Locator) Candidates(id variant.ID, hostOS string) []Candidate {
	pkg := filepath.FromSlash(id.String())
	name := BinaryName(hostOS)

	candidates := make([]Candidate, 0, len(candidateBuilders))
	for _, b := range candidateBuilders {
		dir := b.packageDir(l, pkg)
		if dir == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Topology:   b.topology,
			PackageDir: dir,
			Path:       filepath.Join(dir, "bin", name),
		})
	}
	return candidates
}

// Locate returns the first candidate that exists and is not a directory.
// The returned Search is never nil; check Found.
func (l *Locator) Locate(id variant.ID, hostOS string) *Search {
	search := &Search{
		Variant:    id,
		Candidates: l.Candidates(id, hostOS),
	}

	for _, c := range search.Candidates {
		if l.isFile(c.Path) {
			search.Path = c.Path
			search.PackageDir = c.PackageDir
			return search
		}
	}

	for _, c := range search.Candidates {
		if l.isDir(c.PackageDir) {
			search.PackageDir = c.PackageDir
			break
		}
	}
	return search
}

func (l *Locator) statFunc() func(string) (fs.FileInfo, error) {
	if l.stat == nil {
		return os.Stat
	}
	return l.stat
}

func (l *Locator) isFile(path string) bool {
	info, err := l.statFunc()(path)
	return err == nil && !info.IsDir()
}

func (l *Locator) isDir(path string) bool {
	info, err := l.statFunc()(path)
	return err == nil && info.IsDir()
}
