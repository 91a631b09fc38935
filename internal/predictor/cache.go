package predictor

import "sync"

// Cache holds the predicted pay per job id. An entry reflects the job's
// features as of the last time it was computed; invalidated ids simply
// disappear until recomputed. No I/O, memory only.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]float64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int64]float64)}
}

// Get returns the cached prediction for id, if present.
func (c *Cache) Get(id int64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[id]
	return v, ok
}

// GetAll returns the cached predictions for ids. Caller contract: every id
// must be present; missing ids are reported so the caller can fail loudly.
func (c *Cache) GetAll(ids []int64) (map[int64]float64, []int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[int64]float64, len(ids))
	var missing []int64
	for _, id := range ids {
		v, ok := c.entries[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		result[id] = v
	}
	return result, missing
}

// Missing returns the subset of ids that have no cached entry, in input
// order.
func (c *Cache) Missing(ids []int64) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []int64
	for _, id := range ids {
		if _, ok := c.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// PutAll stores predictions for the given ids, leaving unrelated entries
// alone.
func (c *Cache) PutAll(values map[int64]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, v := range values {
		c.entries[id] = v
	}
}

// Invalidate removes entries for ids. Absent ids are a no-op.
func (c *Cache) Invalidate(ids []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.entries, id)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int64]float64)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
