package source

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxCachedFiles bounds CachedReader when no size is given.
const DefaultMaxCachedFiles = 2048

// CacheStats reports CachedReader effectiveness.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// CachedReader keeps the text of recently read files in an LRU.
//
// Only successful reads are cached: a file that is missing now may appear
// later, and resolution must then see it. Cached entries are dropped with
// Invalidate, typically from a Watcher.
type CachedReader struct {
	inner  Reader
	cache  *lru.Cache[string, string]
	logger *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewCachedReader wraps inner with an LRU of at most maxFiles entries.
// A non-positive maxFiles selects DefaultMaxCachedFiles.
func NewCachedReader(inner Reader, maxFiles int, logger *slog.Logger) (*CachedReader, error) {
	if inner == nil {
		return nil, fmt.Errorf("cached reader: inner reader is nil")
	}
	if maxFiles <= 0 {
		maxFiles = DefaultMaxCachedFiles
	}
	if logger == nil {
		logger = slog.Default()
	}

	cr := &CachedReader{inner: inner, logger: logger}
	cache, err := lru.NewWithEvict(maxFiles, func(path string, _ string) {
		cr.evictions.Add(1)
		logger.Debug("evicting cached source", "path", path)
	})
	if err != nil {
		return nil, fmt.Errorf("cached reader: %w", err)
	}
	cr.cache = cache
	return cr, nil
}

// Read implements Reader.
func (c *CachedReader) Read(path string) (string, error) {
	if text, ok := c.cache.Get(path); ok {
		c.hits.Add(1)
		return text, nil
	}
	c.misses.Add(1)

	text, err := c.inner.Read(path)
	if err != nil {
		return "", err
	}
	c.cache.Add(path, text)
	return text, nil
}

// Exists implements Reader.
func (c *CachedReader) Exists(path string) bool {
	if c.cache.Contains(path) {
		return true
	}
	return c.inner.Exists(path)
}

// Invalidate drops the cached text for path, if any.
func (c *CachedReader) Invalidate(path string) {
	if c.cache.Remove(path) {
		c.logger.Debug("invalidated cached source", "path", path)
	}
}

// Purge drops every cached entry.
func (c *CachedReader) Purge() {
	c.cache.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *CachedReader) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.cache.Len(),
	}
}
