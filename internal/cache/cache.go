// Package cache implements the bounded scan cache: a byte-size-capped store
// of per-file scan results keyed by path+mtime, so unchanged files are
// skipped on repeat scans. Ordering is delegated to
// hashicorp/golang-lru/v2/simplelru (the same recency-ordered doubly linked
// list the library uses for its own count-bounded LRU); the byte-size cap is
// layered on top since simplelru itself only bounds by entry count.
package cache

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/scanner"
)

// Entry is one cached scan result: every piece scanner.Scan produces for a
// file, so a cache hit can stand in for a full rescan without dropping any
// calls/imports/exports edges from the rebuilt graph.
type Entry struct {
	Path     string
	ModTime  int64
	Size     int64
	Elements []model.Element
	Calls    []scanner.CallEdge
	Imports  []scanner.ImportEdge
	Exports  []scanner.ExportEdge
}

func (e *Entry) byteSize() int64 {
	// Approximate accounting: the source size plus a fixed per-element/edge
	// overhead, good enough for a soft cap rather than exact RSS tracking.
	edgeCount := len(e.Calls) + len(e.Imports) + len(e.Exports)
	return e.Size + int64(len(e.Elements))*128 + int64(edgeCount)*64
}

// ScanCache is a size-capped, thread-safe cache of per-file scan results.
// Unlike simplelru's own count bound, eviction here is driven by a byte
// budget: entries are evicted oldest-first until the running total is back
// under MaxBytes.
type ScanCache struct {
	mu        sync.Mutex
	lru       *simplelru.LRU[string, *Entry]
	maxBytes  int64
	curBytes  int64
	hits      int64
	misses    int64
	evictions int64
}

// NewScanCache builds a cache with the given byte budget. maxBytes <= 0
// means unbounded (only a generous count ceiling is enforced).
func NewScanCache(maxBytes int64) *ScanCache {
	c := &ScanCache{maxBytes: maxBytes}
	// simplelru requires a positive count bound; pick one far above anything
	// reasonable scan cache could reach at the byte-size ceiling. When
	// maxBytes <= 0 the count ceiling alone governs eviction.
	countCeiling := 1 << 20
	lru, err := simplelru.NewLRU[string, *Entry](countCeiling, func(key string, value *Entry) {
		c.curBytes -= value.byteSize()
		c.evictions++
	})
	if err != nil {
		// NewLRU only errors on a non-positive size, which countCeiling never is.
		panic(err)
	}
	c.lru = lru
	return c
}

// key is the cache key for a scanned file: path plus modification time, so a
// re-saved-but-unchanged-content file still invalidates (the orchestrator
// trades a few redundant rescans for never serving a stale result).
func key(path string, modTime int64) string {
	return path + "@" + itoa(modTime)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Get looks up a cached entry by path and modification time.
func (c *ScanCache) Get(path string, modTime int64) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lru.Get(key(path, modTime))
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Put inserts or replaces a cached entry, evicting the oldest entries first
// until the cache is back under MaxBytes.
func (c *ScanCache) Put(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(e.Path, e.ModTime)
	if old, ok := c.lru.Peek(k); ok {
		c.curBytes -= old.byteSize()
	}
	c.lru.Add(k, e)
	c.curBytes += e.byteSize()

	if c.maxBytes <= 0 {
		return
	}
	for c.curBytes > c.maxBytes {
		_, _, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
	}
}

// Remove evicts a single entry, if present.
func (c *ScanCache) Remove(path string, modTime int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key(path, modTime))
}

// Len returns the current entry count.
func (c *ScanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats is a point-in-time snapshot of cache performance.
type Stats struct {
	Hits               int64
	Misses             int64
	Evictions          int64
	Entries            int
	Bytes              int64
	MaxBytes           int64
	UtilizationPercent float64
}

// Stats returns hit/miss/eviction counters and the current size, plus the
// byte budget and current utilization against it (0 when the cache is
// unbounded, i.e. MaxBytes <= 0).
func (c *ScanCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	var util float64
	if c.maxBytes > 0 {
		util = 100 * float64(c.curBytes) / float64(c.maxBytes)
	}
	return Stats{
		Hits:               c.hits,
		Misses:             c.misses,
		Evictions:          c.evictions,
		Entries:            c.lru.Len(),
		Bytes:              c.curBytes,
		MaxBytes:           c.maxBytes,
		UtilizationPercent: util,
	}
}

// Purge empties the cache.
func (c *ScanCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.curBytes = 0
}
