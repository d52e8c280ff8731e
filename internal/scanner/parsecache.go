package scanner

import "sync"

// ParseCache memoizes Scan results by path. It is distinct from
// cache.ScanCache: the scan cache is keyed by path+mtime and governs
// incremental rescans across invocations of the orchestrator, while
// ParseCache is keyed by path alone and cleared explicitly rather than by
// eviction. The orchestrator does not use a ParseCache; a caller that wants
// one constructs and owns it.
type ParseCache struct {
	mu      sync.Mutex
	entries map[string]Result
}

// NewParseCache returns an empty cache.
func NewParseCache() *ParseCache {
	return &ParseCache{entries: make(map[string]Result)}
}

// Get returns the cached result for path, if any.
func (c *ParseCache) Get(path string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[path]
	return r, ok
}

// Put stores the result for path.
func (c *ParseCache) Put(path string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = r
}

// Clear empties the cache.
func (c *ParseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Result)
}
