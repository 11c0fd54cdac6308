package resolve

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// cacheEntry is the on-disk record for one memoized resolution.
type cacheEntry struct {
	Path  string `json:"path,omitempty"`
	Found bool   `json:"found"`
}

// CachedResolver wraps a Resolver with a filesystem-backed memo cache
// namespaced by a version string, so the cache invalidates wholesale on
// version bump. The cache is purely a latency layer: a missing or corrupt
// entry falls through to the wrapped resolver and never changes results.
// Negative results (ErrNotFound) are cached too.
type CachedResolver struct {
	inner   Resolver
	dir     string
	mu      sync.Mutex
	writeOK bool
}

var _ Resolver = (*CachedResolver)(nil)

// NewCachedResolver creates a CachedResolver storing entries under
// cacheDir/<version>/. Failure to create the directory disables writes but
// not resolution.
func NewCachedResolver(inner Resolver, cacheDir, version string) *CachedResolver {
	dir := filepath.Join(cacheDir, version)
	err := os.MkdirAll(dir, 0o755)
	return &CachedResolver{
		inner:   inner,
		dir:     dir,
		writeOK: err == nil,
	}
}

// Resolve implements Resolver.
func (c *CachedResolver) Resolve(fromDir, ref string) (string, error) {
	key := c.key(fromDir, ref)

	if entry, ok := c.read(key); ok {
		if !entry.Found {
			return "", fmt.Errorf("%w: %q from %s (cached)", ErrNotFound, ref, fromDir)
		}
		// Guard against stale entries pointing at deleted files.
		if _, err := os.Stat(entry.Path); err == nil {
			return entry.Path, nil
		}
	}

	path, err := c.inner.Resolve(fromDir, ref)
	c.write(key, cacheEntry{Path: path, Found: err == nil})
	return path, err
}

// key hashes the argument pair into a stable cache file name.
func (c *CachedResolver) key(fromDir, ref string) string {
	sum := sha256.Sum256([]byte(fromDir + "\x00" + ref))
	return fmt.Sprintf("%x.json", sum[:16])
}

func (c *CachedResolver) read(key string) (cacheEntry, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry: ignore it, the wrapped resolver is authoritative.
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *CachedResolver) write(key string, entry cacheEntry) {
	if !c.writeOK {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = os.WriteFile(filepath.Join(c.dir, key), data, 0o644)
}
