package credentials

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credential
}

// NewMemoryStore builds an in-memory credential store for testing.
func NewMemoryStore() Store {
	return &memoryStore{creds: make(map[string]Credential)}
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[strings.ToLower(email)]
	if !ok {
		return Credential{}, ErrNotFound
	}
	return cred, nil
}

func (s *memoryStore) Save(_ context.Context, cred Credential) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred.Email = strings.ToLower(cred.Email)
	if _, exists := s.creds[cred.Email]; exists {
		return Credential{}, ErrDuplicateEmail
	}

	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if cred.Status == "" {
		cred.Status = StatusActive
	}
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	s.creds[cred.Email] = cred
	return cred, nil
}
