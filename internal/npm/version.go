package npm

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ParseVersion parses a package version, tolerating a leading "v".
func ParseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version %q", version)
	}
	return v, nil
}

// SameVersion reports whether two package versions are equal by semantic
// version precedence. Build metadata is ignored.
func SameVersion(a, b string) (bool, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return false, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return false, err
	}
	return va.Equal(vb), nil
}
