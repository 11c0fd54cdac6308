package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/crosslink-tools/crosslink/internal/analyze"
)

// elementDefineRe matches custom-element registrations:
// customElements.define("x-foo", ...).
var elementDefineRe = regexp.MustCompile(`customElements\.define\(\s*["']([a-z][a-z0-9]*(?:-[a-z0-9]+)+)["']`)

// runtime is the per-gather shared state handed to analyzers. File contents
// and the element index are each produced at most once per run; everything
// else is read-only.
type runtime struct {
	files  []string
	logger *slog.Logger

	contents sync.Map // path -> []byte

	group    singleflight.Group
	mu       sync.Mutex
	elements map[string][]string
}

var _ analyze.Runtime = (*runtime)(nil)

func newRuntime(files []string, logger *slog.Logger) *runtime {
	return &runtime{files: files, logger: logger}
}

// Files implements analyze.Runtime.
func (rt *runtime) Files() []string {
	return rt.files
}

// Logger implements analyze.Runtime.
func (rt *runtime) Logger() *slog.Logger {
	return rt.logger
}

// readFile returns the file's contents, reading it from disk the first time
// and serving the cached bytes afterwards so each file is read at most once
// per run.
func (rt *runtime) readFile(path string) ([]byte, error) {
	if cached, ok := rt.contents.Load(path); ok {
		return cached.([]byte), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	actual, _ := rt.contents.LoadOrStore(path, data)
	return actual.([]byte), nil
}

// ElementIndex implements analyze.Runtime. Concurrent first callers are
// collapsed into one construction via singleflight; later callers get the
// memoized map.
func (rt *runtime) ElementIndex(_ context.Context) (map[string][]string, error) {
	rt.mu.Lock()
	if rt.elements != nil {
		defer rt.mu.Unlock()
		return rt.elements, nil
	}
	rt.mu.Unlock()

	v, err, _ := rt.group.Do("element-index", func() (any, error) {
		index, err := rt.buildElementIndex()
		if err != nil {
			return nil, err
		}
		rt.mu.Lock()
		rt.elements = index
		rt.mu.Unlock()
		return index, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string][]string), nil
}

// buildElementIndex scans every discovered script file for custom-element
// registrations and maps each declared name to its declaring files.
func (rt *runtime) buildElementIndex() (map[string][]string, error) {
	index := make(map[string][]string)
	for _, path := range rt.files {
		if !analyze.IsScriptPath(path) {
			continue
		}
		data, err := rt.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("element index: %w", err)
		}
		for _, m := range elementDefineRe.FindAllSubmatch(data, -1) {
			name := string(m[1])
			index[name] = append(index[name], path)
		}
	}
	for name := range index {
		sort.Strings(index[name])
	}
	return index, nil
}
