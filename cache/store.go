package cache

import (
	"context"
	"sync"
	"time"

	"ncstfeed/types"
)

// Store holds the single cache slot
type Store interface {
	// Get returns the current entry, or nil when the slot is empty
	Get(ctx context.Context) (*types.CacheEntry, error)
	// Set replaces the slot; ttl lets backends expire the entry themselves
	Set(ctx context.Context, entry types.CacheEntry, ttl time.Duration) error
	// Clear empties the slot
	Clear(ctx context.Context) error
	Close() error
}

// MemoryStore is an in-process Store guarded by a mutex
type MemoryStore struct {
	mu    sync.RWMutex
	entry *types.CacheEntry
}

// NewMemoryStore creates an empty in-process slot
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (*types.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.entry == nil {
		return nil, nil
	}
	e := *m.entry
	return &e, nil
}

func (m *MemoryStore) Set(_ context.Context, entry types.CacheEntry, _ time.Duration) error {
	m.mu.Lock()
	m.entry = &entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entry = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
