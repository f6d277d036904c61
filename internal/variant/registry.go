// Package variant maps platform keys to the packages that ship the matching
// prebuilt ic-wasm binary.
//
// The table is compiled in. Adding a platform means adding a row here; the
// launcher, the install hook and the public API all read the same table.
package variant

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
)

// ID names a distributable package that bundles one prebuilt binary.
type ID string

// String returns the package name.
func (id ID) String() string {
	return string(id)
}

// Scope is the package scope shared by the launcher and every variant.
const Scope = "@icp-sdk"

// ErrUnsupportedPlatform is returned when the host key has no variant.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

type entry struct {
	id    ID
	label string
}

// registry is the immutable platform table.
var registry = map[platform.Key]entry{
	"darwin-arm64": {id: Scope + "/ic-wasm-darwin-arm64", label: "macOS ARM64 (Apple Silicon)"},
	"darwin-x64":   {id: Scope + "/ic-wasm-darwin-x64", label: "macOS x64 (Intel)"},
	"linux-arm64":  {id: Scope + "/ic-wasm-linux-arm64", label: "Linux ARM64"},
	"linux-x64":    {id: Scope + "/ic-wasm-linux-x64", label: "Linux x64"},
	"win32-x64":    {id: Scope + "/ic-wasm-win32-x64", label: "Windows x64"},
}

// Lookup returns the variant package for key. ok is false for unsupported hosts.
func Lookup(key platform.Key) (id ID, ok bool) {
	e, ok := registry[key]
	return e.id, ok
}

// Describe returns a human label for a supported key, or the key itself.
func Describe(key platform.Key) string {
	if e, ok := registry[key]; ok {
		return e.label
	}
	return key.String()
}

// Supported returns every supported key in a stable order.
func Supported() []platform.Key {
	keys := make([]platform.Key, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SupportedList joins Supported with ", " for diagnostics.
func SupportedList() string {
	keys := Supported()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// Resolve is Lookup for callers that want an error. The error is marked with
// ErrUnsupportedPlatform and carries the supported set as a hint.
func Resolve(key platform.Key) (ID, error) {
	if id, ok := Lookup(key); ok {
		return id, nil
	}
	err := errors.Mark(errors.Newf("unsupported platform: %s", key), ErrUnsupportedPlatform)
	return "", errors.WithHintf(err, "supported platforms: %s", SupportedList())
}
