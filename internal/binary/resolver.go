package binary

import (
	"sync"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// Searcher finds a variant binary on disk. *Locator implements it.
type Searcher interface {
	Locate(id variant.ID, hostOS string) *Search
}

// Resolution is the outcome of resolving the binary for a platform.
type Resolution struct {
	Key     platform.Key
	Variant variant.ID // empty for unsupported platforms
	Search  *Search    // nil for unsupported platforms
	Err     error
}

// Resolver resolves the binary for one platform key, at most once.
type Resolver struct {
	key      platform.Key
	searcher Searcher
	logger   config.Logger

	once   sync.Once
	result *Resolution
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(key platform.Key, searcher Searcher, logger config.Logger) *Resolver {
	if logger == nil {
		logger = config.NopLogger()
	}
	return &Resolver{
		key:      key,
		searcher: searcher,
		logger:   logger,
	}
}

// Resolve maps the key to its variant and searches for the binary on the
// first call. Every call returns the same Resolution, including a failed one.
func (r *Resolver) Resolve() *Resolution {
	r.once.Do(func() {
		r.result = r.resolve()
	})
	return r.result
}

func (r *Resolver) resolve() *Resolution {
	res := &Resolution{Key: r.key}

	id, err := variant.Resolve(r.key)
	if err != nil {
		r.logger.Debug("no variant for platform", "key", r.key)
		res.Err = err
		return res
	}
	res.Variant = id

	res.Search = r.searcher.Locate(id, r.key.OS())
	if !res.Search.Found() {
		r.logger.Debug("binary not found", "key", r.key, "package", id, "searched", res.Search.SearchedPaths())
		res.Err = newNotFoundError(r.key, id, res.Search.SearchedPaths())
		return res
	}

	r.logger.Debug("resolved binary", "key", r.key, "path", res.Search.Path)
	return res
}

// BinaryPath returns the resolved executable path or a descriptive error.
func (r *Resolver) BinaryPath() (string, error) {
	res := r.Resolve()
	if res.Err != nil {
		return "", res.Err
	}
	return res.Search.Path, nil
}

// LookupBinaryPath is BinaryPath without the error.
func (r *Resolver) LookupBinaryPath() (string, bool) {
	path, err := r.BinaryPath()
	return path, err == nil
}

// Key returns the platform key the Resolver was created for.
func (r *Resolver) Key() platform.Key {
	return r.key
}
