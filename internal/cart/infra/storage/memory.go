package storage

import "sync"

// MemoryStore keeps the blob in memory: a throwaway cart, and the storage
// used by tests. WriteCount lets tests assert write-through behavior.
type MemoryStore struct {
	mu     sync.Mutex
	blob   []byte
	ok     bool
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Read() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, false, nil
	}
	blob := make([]byte, len(m.blob))
	copy(blob, m.blob)
	return blob, true, nil
}

func (m *MemoryStore) Write(blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = make([]byte, len(blob))
	copy(m.blob, blob)
	m.ok = true
	m.writes++
	return nil
}

// WriteCount reports how many writes the store has absorbed.
func (m *MemoryStore) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
