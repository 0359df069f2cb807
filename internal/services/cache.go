package services

import (
	"strings"
	"sync"
	"time"
)

// evalCache is a small TTL cache for evaluations, keyed household|YYYY-MM.
// Oldest entry is evicted when full. Entries for a household are dropped
// whenever one of its transactions changes.
type evalCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]evalEntry
}

type evalEntry struct {
	eval      *Evaluation
	expiresAt time.Time
}

func newEvalCache(maxSize int, ttl time.Duration) *evalCache {
	return &evalCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]evalEntry),
	}
}

func (c *evalCache) get(key string) (*Evaluation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return entry.eval, true
}

func (c *evalCache) set(key string, eval *Evaluation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.items[key] = evalEntry{eval: eval, expiresAt: time.Now().Add(c.ttl)}
}

func (c *evalCache) deleteHousehold(householdID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := householdID + "|"
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

func (c *evalCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.items {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey = key
			oldest = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
