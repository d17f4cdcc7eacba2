package cms

import (
	"sync"
	"time"
)

const maxCacheEntries = 512

type responseCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]cacheEntry
}

type cacheEntry struct {
	env     Envelope
	expires time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{ttl: ttl, now: time.Now, items: map[string]cacheEntry{}}
}

func (c *responseCache) get(key string) (Envelope, bool) {
	if c == nil {
		return Envelope{}, false
	}
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return Envelope{}, false
	}
	return cloneEnvelope(entry.env), true
}

func (c *responseCache) put(key string, env Envelope) {
	if c == nil {
		return
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= maxCacheEntries {
		for k, e := range c.items {
			if now.After(e.expires) {
				delete(c.items, k)
			}
		}
		if len(c.items) >= maxCacheEntries {
			c.items = map[string]cacheEntry{}
		}
	}
	c.items[key] = cacheEntry{env: cloneEnvelope(env), expires: now.Add(c.ttl)}
}

func cloneEnvelope(src Envelope) Envelope {
	cp := src
	if src.Data != nil {
		cp.Data = append([]byte(nil), src.Data...)
	}
	return cp
}
