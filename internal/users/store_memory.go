package users

import (
	"context"
	"strings"
	"sync"

	"lumina/pkg/platform/sentinel"
)

// InMemoryStore keeps user accounts in process memory for unit tests,
// enforcing the same username/email uniqueness the Postgres constraints do.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   map[int64]User
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[int64]User), nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, user User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rows {
		if strings.EqualFold(existing.Username, user.Username) ||
			strings.EqualFold(existing.Email, user.Email) {
			return 0, sentinel.ErrConflict
		}
	}

	user.ID = s.nextID
	s.nextID++
	s.rows[user.ID] = user
	return user.ID, nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.rows {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, userID int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.rows[userID]
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	return user, nil
}
