package binary

import (
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/platform"
	"github.com/icp-sdk/ic-wasm-launcher/internal/variant"
)

// countingSearcher records how often the filesystem would be searched.
type countingSearcher struct {
	mu     sync.Mutex
	calls  int
	path   string
	lastOS string
}

func (c *countingSearcher) Locate(id variant.ID, hostOS string) *Search {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastOS = hostOS
	return &Search{
		Variant:    id,
		Candidates: []Candidate{{Topology: TopologyWorkingDir, Path: "/w/node_modules/" + id.String() + "/bin/ic-wasm"}},
		Path:       c.path,
	}
}

func TestResolver_MemoizesSuccess(t *testing.T) {
	searcher := &countingSearcher{path: "/w/ic-wasm"}
	r := NewResolver("linux-x64", searcher, nil)

	for i := 0; i < 5; i++ {
		path, err := r.BinaryPath()
		if err != nil {
			t.Fatalf("BinaryPath() error = %v", err)
		}
		if path != "/w/ic-wasm" {
			t.Errorf("BinaryPath() = %q", path)
		}
	}
	if _, ok := r.LookupBinaryPath(); !ok {
		t.Error("LookupBinaryPath() ok = false")
	}

	if searcher.calls != 1 {
		t.Errorf("searched %d times, want 1", searcher.calls)
	}
	if searcher.lastOS != platform.OSLinux {
		t.Errorf("searched for os %q, want %q", searcher.lastOS, platform.OSLinux)
	}
}

func TestResolver_MemoizesFailure(t *testing.T) {
	searcher := &countingSearcher{}
	r := NewResolver("darwin-arm64", searcher, nil)

	_, err1 := r.BinaryPath()
	_, err2 := r.BinaryPath()
	if err1 == nil || err1 != err2 {
		t.Fatalf("BinaryPath() errors = %v, %v; want the same non-nil error", err1, err2)
	}
	if _, ok := r.LookupBinaryPath(); ok {
		t.Error("LookupBinaryPath() ok = true")
	}
	if searcher.calls != 1 {
		t.Errorf("searched %d times, want 1", searcher.calls)
	}
}

func TestResolver_Concurrent(t *testing.T) {
	searcher := &countingSearcher{path: "/w/ic-wasm"}
	r := NewResolver("linux-arm64", searcher, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.LookupBinaryPath()
		}()
	}
	wg.Wait()

	if searcher.calls != 1 {
		t.Errorf("searched %d times, want 1", searcher.calls)
	}
}

func TestResolver_NotFoundError(t *testing.T) {
	r := NewResolver("linux-x64", &countingSearcher{}, nil)

	_, err := r.BinaryPath()
	if err == nil {
		t.Fatal("BinaryPath() expected error")
	}

	if !errors.Is(err, ErrBinaryNotFound) {
		t.Error("errors.Is(err, ErrBinaryNotFound) = false")
	}
	if !stderrors.Is(err, ErrBinaryNotFound) {
		t.Error("stdlib errors.Is(err, ErrBinaryNotFound) = false")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %T is not *NotFoundError", err)
	}
	if nf.Key != "linux-x64" || nf.Variant != "@icp-sdk/ic-wasm-linux-x64" {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if len(nf.Searched) != 1 {
		t.Errorf("Searched = %v, want one path", nf.Searched)
	}

	if !strings.Contains(err.Error(), "could not find ic-wasm binary for linux-x64") {
		t.Errorf("Error() = %q", err.Error())
	}

	hints := strings.Join(errors.GetAllHints(err), "\n")
	for _, want := range []string{"@icp-sdk/ic-wasm-linux-x64", "npm install --force", "/w/node_modules/"} {
		if !strings.Contains(hints, want) {
			t.Errorf("hints %q missing %q", hints, want)
		}
	}
}

func TestResolver_UnsupportedPlatform(t *testing.T) {
	searcher := &countingSearcher{path: "/never"}
	r := NewResolver("sunos-x64", searcher, nil)

	res := r.Resolve()
	if !errors.Is(res.Err, variant.ErrUnsupportedPlatform) {
		t.Fatalf("Err = %v, want ErrUnsupportedPlatform", res.Err)
	}
	if res.Variant != "" || res.Search != nil {
		t.Errorf("Resolution = %+v, want no variant and no search", res)
	}
	if searcher.calls != 0 {
		t.Errorf("searched %d times for an unsupported platform", searcher.calls)
	}
	if r.Key() != "sunos-x64" {
		t.Errorf("Key() = %q", r.Key())
	}
}
