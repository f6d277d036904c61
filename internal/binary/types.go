package binary

import (
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// Topology names one of the install layouts a variant can be found in.
type Topology string

const (
	// TopologyGlobalSibling is a global install where scoped packages sit next
	// to the launcher package.
	TopologyGlobalSibling Topology = "global-sibling"
	// TopologyLocalNested is a variant nested under the launcher package.
	TopologyLocalNested Topology = "local-nested"
	// TopologyWorkingDir is a dependency of the project in the working directory.
	TopologyWorkingDir Topology = "working-dir"
)

// String returns the string representation of the topology
func (t Topology) String() string {
	return string(t)
}

// Candidate is one place the binary may live.
type Candidate struct {
	Topology   Topology
	PackageDir string // variant package root
	Path       string // executable inside PackageDir
}

// Search records the outcome of a Locate call.
type Search struct {
	Variant    variant.ID
	Candidates []Candidate

	// Path is the chosen executable, empty when nothing matched.
	Path string

	// PackageDir is the variant package directory of the chosen candidate. When
	// no binary matched it is the first candidate package directory that exists,
	// or empty when the package is not installed at all.
	PackageDir string
}

// Found reports whether a binary was located.
func (s *Search) Found() bool {
	return s != nil && s.Path != ""
}

// PackageFound reports whether any variant package directory exists.
func (s *Search) PackageFound() bool {
	return s != nil && s.PackageDir != ""
}

// SearchedPaths returns the candidate executable paths in search order.
func (s *Search) SearchedPaths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		paths[i] = c.Path
	}
	return paths
}
