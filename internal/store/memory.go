package store

import "sync"

// MemoryStore is a map-backed KeyValueStore. The error fields let tests
// simulate a failing storage medium.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte

	// Error flags for testing error conditions
	GetError error
	SetError error

	// Writes counts successful Set calls.
	Writes int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get implements KeyValueStore.
func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	// Return a copy to avoid external modifications
	return append([]byte(nil), v...), true, nil
}

// Set implements KeyValueStore.
func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetError != nil {
		return m.SetError
	}
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

// Close implements KeyValueStore.
func (m *MemoryStore) Close() error {
	return nil
}
