package sheet

import (
	"context"
	"sync"
)

// MemoryStore is a process-local KVStore. It backs the "memory" storage driver and
// doubles as the store used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	saves   int
	deletes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.saves++
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.deletes++
	return nil
}

// Writes reports how many Save and Delete calls the store has served.
func (m *MemoryStore) Writes() (saves, deletes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves, m.deletes
}
