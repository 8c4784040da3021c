package meting

import "sync"

// SearchResult is one upstream search hit. URLs are already normalized
// when the result is produced by the client.
type SearchResult struct {
	ID       string
	Name     string
	Artist   string
	URL      string
	PicURL   string
	LyricURL string
}

// Cache maps song ids to the most recent search result seen for that id.
// It bridges the gap between a search call (which obtains a lyric URL)
// and a later resolve call for the same id where the caller omits the
// lyric reference. No TTL, no eviction: entries are tiny and live for one
// process run. Last write wins on id collision.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]SearchResult
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]SearchResult{}}
}

// Get returns the cached result for id, if any.
func (c *Cache) Get(id string) (SearchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[id]
	return result, ok
}

// Put stores a result under id. Empty ids are never cached.
func (c *Cache) Put(id string, result SearchResult) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = result
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
