package binary

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// ErrBinaryNotFound is returned when no candidate path holds the binary.
var ErrBinaryNotFound = errors.New("ic-wasm binary not found")

// NotFoundError describes a failed search for the variant binary.
type NotFoundError struct {
	Key      platform.Key
	Variant  variant.ID
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find ic-wasm binary for %s (package %s)", e.Key, e.Variant)
}

// Is lets errors.Is match ErrBinaryNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrBinaryNotFound
}

// newNotFoundError wraps a NotFoundError with user hints: the package that
// should have provided the binary and every path that was tried.
func newNotFoundError(key platform.Key, id variant.ID, searched []string) error {
	var err error = &NotFoundError{Key: key, Variant: id, Searched: searched}
	err = errors.Mark(err, ErrBinaryNotFound)
	err = errors.WithHintf(err, "Package %s may not have installed correctly. Try reinstalling: npm install --force", id)
	if len(searched) > 0 {
		err = errors.WithHintf(err, "Searched paths: %s", strings.Join(searched, ", "))
	}
	return err
}
