package storage

import (
	"fmt"
	"sync"
)

// MemoryStore is a Store backed by in-process maps, for a corpus that
// only needs to live for the current run (no -corpus path given).
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) CreateBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[string(name)]; !ok {
		m.buckets[string(name)] = make(map[string][]byte)
	}
	return nil
}

func (m *MemoryStore) DeleteBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, string(name))
	return nil
}

func (m *MemoryStore) BucketExists(name []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buckets[string(name)]
	return ok, nil
}

func (m *MemoryStore) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return fmt.Errorf("storage: bucket not found: %s", bucket)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	bkt[string(key)] = stored
	return nil
}

func (m *MemoryStore) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return nil, fmt.Errorf("storage: bucket not found: %s", bucket)
	}
	value, ok := bkt[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStore) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return fmt.Errorf("storage: bucket not found: %s", bucket)
	}
	for k, v := range bkt {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
