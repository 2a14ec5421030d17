package services

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is a small TTL read cache shared by the catalog services. Expired
// entries are dropped on lookup and swept on every write.
type Cache struct {
	mutex   sync.RWMutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

func (c *Cache) set(key string, data interface{}, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = &cacheEntry{data: data, expiresAt: now.Add(ttl)}
}

// invalidate drops every key starting with prefix.
func (c *Cache) invalidate(prefix string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}
