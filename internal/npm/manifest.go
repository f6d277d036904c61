// Package npm reads the package.json manifests that ship alongside the
// launcher and its platform variants.
package npm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// ManifestFile is the manifest file name inside a package directory.
const ManifestFile = "package.json"

// ErrNoManifest is returned when a package directory has no manifest.
var ErrNoManifest = errors.New("package manifest not found")

// Manifest holds the package.json fields the launcher cares about.
type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	OS      []string `json:"os,omitempty"`
	CPU     []string `json:"cpu,omitempty"`
}

// ReadManifest reads dir/package.json.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", path), ErrNoManifest)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var m Manifest
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &m, nil
}

// SupportsPlatform reports whether the manifest's os and cpu restrictions
// admit the given values. Empty lists admit everything. Entries prefixed
// with "!" exclude a value.
func (m *Manifest) SupportsPlatform(hostOS, arch string) bool {
	return allowed(m.OS, hostOS) && allowed(m.CPU, arch)
}

func allowed(list []string, value string) bool {
	if len(list) == 0 {
		return true
	}

	hasPositive := false
	for _, entry := range list {
		if name, negated := strings.CutPrefix(entry, "!"); negated {
			if name == value {
				return false
			}
			continue
		}
		hasPositive = true
		if entry == value {
			return true
		}
	}
	return !hasPositive
}
