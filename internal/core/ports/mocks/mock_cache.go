package mocks

import (
	"fmt"
	"sync"
)

// MockCacheStore is an in-memory implementation of the CacheStore port
type MockCacheStore struct {
	mu      sync.RWMutex
	entries map[string]string // key → fake path
}

// NewMockCacheStore creates an empty mock cache
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		entries: make(map[string]string),
	}
}

// Path resolves a key to its fake stored path
func (m *MockCacheStore) Path(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, ok := m.entries[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}
	return path, nil
}

// Contains reports whether the key is cached
func (m *MockCacheStore) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[key]
	return ok
}

// Store records the key with a synthesized path
func (m *MockCacheStore) Store(key string, data []byte, ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := "/cache/" + key + ext
	m.entries[key] = path
	return path, nil
}

// Keys returns every cached key
func (m *MockCacheStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes every entry
func (m *MockCacheStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]string)
	return nil
}
