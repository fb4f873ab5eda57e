package session

import (
	"context"
	"sync"
)

// MemoryStorage is a single-slot, in-process Storage. It ignores the browser
// id on the context, which makes it convenient for tests and single-user
// tooling.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
	has   bool
}

// NewMemoryStorage constructs an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Read implements Storage.
func (s *MemoryStorage) Read(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has, nil
}

// Write implements Storage.
func (s *MemoryStorage) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = true
	return nil
}

// Clear implements Storage.
func (s *MemoryStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.has = false
	return nil
}
