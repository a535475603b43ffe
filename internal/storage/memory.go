package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store, used by tests and as the fallback
// backend when no durable storage is configured
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Save stores a copy of the snapshot under the key
func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.snapshots[key] = buf
	return nil
}

// Load returns a copy of the stored snapshot
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.snapshots[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
