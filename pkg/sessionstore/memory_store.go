package sessionstore

import (
	"context"
	"sync"
)

// MemoryStore implements Store in memory. It is used by tests and by
// ephemeral runs that should not leave a session behind on disk.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save overwrites both entries.
func (s *MemoryStore) Save(ctx context.Context, token string, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = cloneBytes(user)
	return nil
}

// Load returns the stored pair.
func (s *MemoryStore) Load(ctx context.Context) (string, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, cloneBytes(s.user), nil
}

// Clear removes both entries.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
