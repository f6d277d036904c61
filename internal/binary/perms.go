package binary

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
)

// executableMode is rwxr-xr-x.
const executableMode os.FileMode = 0o755

// SetExecutable sets the binary's permissions to 0755.
func SetExecutable(path string) error {
	if err := os.Chmod(path, executableMode); err != nil {
		return errors.Wrap(err, "set executable")
	}
	return nil
}

// IsExecutable reports whether path is a regular file the current platform
// would run. On Windows every regular file qualifies.
func IsExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "stat binary")
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}

	if runtime.GOOS == "windows" {
		return true, nil
	}

	return info.Mode().Perm()&0o111 != 0, nil
}
