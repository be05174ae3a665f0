package tidydraws

import (
	"container/list"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tidydraws/table"
)

// Cache interface for raw draw arrays. Caching only applies to models that
// implement Fingerprinter; everything else always reaches the engine.
type Cache interface {
	// Get retrieves a cached draw array by key.
	Get(key string) (*Draws, bool)

	// Set stores a draw array in the cache.
	Set(key string, draws *Draws)

	// Clear removes all entries from the cache.
	Clear()

	// Size returns the current number of cached entries.
	Size() int

	// Capacity returns the maximum number of cached entries.
	Capacity() int

	// Stats returns cache hit/miss statistics.
	Stats() CacheStats
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// HitRate returns the cache hit rate as a percentage (0-100).
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// DrawCache is a thread-safe LRU cache for raw draw arrays with an optional
// per-entry time-to-live.
type DrawCache struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	lru      *list.List
	hits     int64
	misses   int64
}

// cacheEntry represents a cached item.
type cacheEntry struct {
	key    string
	draws  *Draws
	stored time.Time
}

// NewDrawCache creates a new LRU cache with the specified capacity and TTL
// (ttl 0 = entries never expire). Default capacity is 100 entries.
func NewDrawCache(capacity int, ttl time.Duration) *DrawCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &DrawCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get retrieves a cached draw array by key.
func (c *DrawCache) Get(key string) (*Draws, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		if c.ttl > 0 && time.Since(entry.stored) > c.ttl {
			c.lru.Remove(elem)
			delete(c.items, key)
			c.misses++
			return nil, false
		}
		c.lru.MoveToFront(elem)
		c.hits++
		return entry.draws, true
	}

	c.misses++
	return nil, false
}

// Set stores a draw array in the cache.
func (c *DrawCache) Set(key string, draws *Draws) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.draws = draws
		entry.stored = time.Now()
		return
	}

	entry := &cacheEntry{key: key, draws: draws, stored: time.Now()}
	elem := c.lru.PushFront(entry)
	c.items[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			oldEntry := oldest.Value.(*cacheEntry)
			delete(c.items, oldEntry.key)
		}
	}
}

// Clear removes all entries from the cache.
func (c *DrawCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru = list.New()
	c.hits = 0
	c.misses = 0
}

// Size returns the current number of cached entries.
func (c *DrawCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// Capacity returns the maximum number of cached entries.
func (c *DrawCache) Capacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capacity
}

// Stats returns cache hit/miss statistics.
func (c *DrawCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   c.lru.Len(),
	}
}

// GenerateDrawKey creates a deterministic cache key for a draw call from the
// call kind ("predict" or "fitted"), the model family and fingerprint, the
// input table, and the generic options.
func GenerateDrawKey(kind, family, fingerprint string, newdata *table.Table, opts *DrawOptions) string {
	keyData := struct {
		Kind           string
		Family         string
		Fingerprint    string
		Columns        []*table.Column
		N              int
		ReFormula      string
		HasReFormula   bool
		NoGroupEffects bool
		Scale          string
		DPars          map[string]string
		AllDPars       bool
		Extra          map[string]any
	}{
		Kind:           kind,
		Family:         family,
		Fingerprint:    fingerprint,
		Columns:        newdata.Columns(),
		N:              opts.N,
		ReFormula:      opts.ReFormula,
		HasReFormula:   opts.HasReFormula,
		NoGroupEffects: opts.NoGroupEffects,
		Scale:          opts.Scale.String(),
		DPars:          opts.DPars,
		AllDPars:       opts.AllDPars,
		Extra:          opts.Extra,
	}

	// json.Marshal sorts map keys, so the key is deterministic.
	data, err := json.Marshal(keyData)
	if err != nil {
		// Fallback to a coarse key if marshaling fails.
		return fmt.Sprintf("%s:%s:%s:%d", kind, family, fingerprint, newdata.NRows())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
