package dataset

import (
	"sync"

	"github.com/pivolan/mbti_top10/domain/models"
)

// Cache maps a source key to its parsed dataset. Entries are written once and
// never evicted; a cache belongs to a single session.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*models.Dataset
}

func NewCache() *Cache {
	return &Cache{entries: map[string]*models.Dataset{}}
}

func (c *Cache) Get(key string) (*models.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.entries[key]
	return ds, ok
}

// Put stores ds under key unless an entry already exists, and returns the
// entry that is kept.
func (c *Cache) Put(key string, ds *models.Dataset) *models.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = ds
	return ds
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
