package pipeline

import (
	"sync"

	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// ResultCache keeps parse results keyed by URL. It is bounded: when it
// fills up, the oldest entries are evicted in one batch. Failed results
// are cached too, so a bad URL is not re-fetched on every request.
type ResultCache struct {
	mu       sync.RWMutex
	store    map[string]common.RecipeParsingResult
	order    []string
	capacity int
	batch    int
}

// NewResultCache builds a cache from the cache configuration. It
// returns nil when caching is disabled; every method tolerates a nil
// receiver.
func NewResultCache(cfg config.CacheConfig) *ResultCache {
	if !cfg.Enabled {
		common.LogInfo("result cache disabled")
		return nil
	}
	common.LogInfo("result cache initialized",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("evict_batch", cfg.EvictBatch))
	return &ResultCache{
		store:    make(map[string]common.RecipeParsingResult),
		capacity: cfg.Capacity,
		batch:    cfg.EvictBatch,
	}
}

// Get returns the cached result for url, if any.
func (c *ResultCache) Get(url string) (common.RecipeParsingResult, bool) {
	if c == nil {
		return common.RecipeParsingResult{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.store[url]
	return result, ok
}

// Set stores a result. Re-caching an existing URL replaces the value
// without disturbing its eviction order.
func (c *ResultCache) Set(url string, result common.RecipeParsingResult) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[url]; exists {
		c.store[url] = result
		return
	}

	if len(c.store) >= c.capacity {
		evicted := c.evictOldest()
		common.LogInfo("result cache evicted oldest entries",
			zap.Int("count", evicted),
			zap.Int("remaining", len(c.store)))
	}

	c.store[url] = result
	c.order = append(c.order, url)
}

// evictOldest removes the oldest batch of entries. Caller holds the
// write lock.
func (c *ResultCache) evictOldest() int {
	n := c.batch
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, url := range c.order[:n] {
		delete(c.store, url)
	}
	c.order = c.order[n:]
	return n
}

// Clear empties the cache and returns how many entries were dropped.
func (c *ResultCache) Clear() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.store)
	c.store = make(map[string]common.RecipeParsingResult)
	c.order = nil
	return n
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
