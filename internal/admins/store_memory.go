package admins

import (
	"context"
	"strings"
	"sync"

	"lumina/pkg/platform/sentinel"
)

// InMemoryStore keeps admin accounts in process memory for unit tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   map[int64]Admin
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[int64]Admin), nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, admin Admin) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rows {
		if strings.EqualFold(existing.Username, admin.Username) {
			return 0, sentinel.ErrConflict
		}
	}

	admin.ID = s.nextID
	s.nextID++
	s.rows[admin.ID] = admin
	return admin.ID, nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, admin := range s.rows {
		if strings.EqualFold(admin.Username, username) {
			return admin, nil
		}
	}
	return Admin{}, sentinel.ErrNotFound
}
