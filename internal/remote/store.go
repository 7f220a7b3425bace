package remote

import "sync"

// Store persists successful response bodies for the lifetime of a session.
// Save keeps the first payload stored under a key; Replace overwrites an
// entry that no longer decodes.
type Store interface {
	// Load returns the payload stored under key and whether it exists.
	Load(key string) ([]byte, bool, error)

	// Save stores payload under key unless the key is already present.
	Save(key string, payload []byte) error

	// Replace stores payload under key, overwriting any existing entry.
	Replace(key string, payload []byte) error
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return cp, true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		return nil
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.entries[key] = cp
	return nil
}

// Replace implements Store.
func (s *MemoryStore) Replace(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.entries[key] = cp
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
