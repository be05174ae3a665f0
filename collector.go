package tidydraws

import (
	"sync"
	"time"
)

// DrawRecord is one observed draw call, as handed to a Collector.
type DrawRecord struct {
	RequestID  string
	Kind       string // "predict" or "fitted"
	Family     string
	InputRows  int
	Iterations int
	Categories int
	Duration   time.Duration
	CacheHit   bool
	Err        string // empty on success
	Timestamp  time.Time
}

// Collector receives a record of every draw call.
type Collector interface {
	// Collect records a draw call.
	Collect(record *DrawRecord) error

	// Close closes the collector and flushes any pending records.
	Close() error
}

// MemoryCollector stores draw records in a ring buffer (in-memory).
type MemoryCollector struct {
	records []*DrawRecord
	size    int
	head    int
	count   int64
	mu      sync.RWMutex
}

// NewMemoryCollector creates a new in-memory ring buffer collector.
func NewMemoryCollector(size int) *MemoryCollector {
	if size <= 0 {
		size = 100 // Default size
	}
	return &MemoryCollector{
		records: make([]*DrawRecord, size),
		size:    size,
	}
}

// Collect adds a draw record to the ring buffer.
func (c *MemoryCollector) Collect(record *DrawRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[c.head] = record
	c.head = (c.head + 1) % c.size
	c.count++

	return nil
}

// Close is a no-op for memory collector.
func (c *MemoryCollector) Close() error {
	return nil
}

// GetAll returns all records in the buffer (oldest first).
func (c *MemoryCollector) GetAll() []*DrawRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getAllUnsafe()
}

// GetLast returns the last N records (most recent first).
func (c *MemoryCollector) GetLast(n int) []*DrawRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n <= 0 {
		return []*DrawRecord{}
	}

	all := c.getAllUnsafe()
	if n > len(all) {
		n = len(all)
	}
	result := make([]*DrawRecord, n)
	for i := 0; i < n; i++ {
		result[i] = all[len(all)-1-i]
	}
	return result
}

// getAllUnsafe returns all records without locking (helper method).
func (c *MemoryCollector) getAllUnsafe() []*DrawRecord {
	if c.count < int64(c.size) {
		result := make([]*DrawRecord, 0, c.head)
		for i := 0; i < c.head; i++ {
			if c.records[i] != nil {
				result = append(result, c.records[i])
			}
		}
		return result
	}

	result := make([]*DrawRecord, 0, c.size)
	for i := c.head; i < c.size; i++ {
		if c.records[i] != nil {
			result = append(result, c.records[i])
		}
	}
	for i := 0; i < c.head; i++ {
		if c.records[i] != nil {
			result = append(result, c.records[i])
		}
	}
	return result
}
