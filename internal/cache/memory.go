package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// Memory is an in-process implementation of Cache with lazy expiry and a
// periodic sweeper.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry

	stopSweep chan struct{}
	stopOnce  sync.Once
}

// NewMemory creates a new in-memory cache with automatic cleanup.
func NewMemory() *Memory {
	c := &Memory{
		entries:   make(map[string]*memoryEntry),
		stopSweep: make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get retrieves a value by key.
func (c *Memory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired() {
		return nil, ErrCacheMiss
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores a value with the given TTL.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	c.entries[key] = &memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a value by key.
func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (c *Memory) Close() {
	c.stopOnce.Do(func() { close(c.stopSweep) })
}

func (c *Memory) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.expired() {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopSweep:
			return
		}
	}
}
