package storage

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. It backs tests and the degraded mode the
// Fallback wrapper switches to when the database is unreachable.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, email, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[email][key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Save(ctx context.Context, email, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[email] == nil {
		m.data[email] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[email][key] = stored
	return nil
}

func (m *Memory) Delete(ctx context.Context, email, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[email], key)
	return nil
}

func (m *Memory) DeleteAll(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, email)
	return nil
}
