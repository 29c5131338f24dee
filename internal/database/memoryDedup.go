package database

import (
	"context"
	"sync"
)

type memoryDedupCache struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

func NewMemoryDedupCache() DedupCache {
	return &memoryDedupCache{seen: make(map[string]struct{})}
}

func (c *memoryDedupCache) Seen(_ context.Context, id string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[id]
	return ok, nil
}

func (c *memoryDedupCache) MarkSeen(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[id] = struct{}{}
	return nil
}
