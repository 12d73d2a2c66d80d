package likes

import (
	"context"
	"sync"
	"time"

	"lumina/pkg/platform/sentinel"
)

type pairKey struct {
	userID  int64
	photoID int64
}

// InMemoryStore keeps like relations in process memory, enforcing the same
// pair uniqueness the Postgres unique index provides.
type InMemoryStore struct {
	mu     sync.Mutex
	rows   map[pairKey]Like
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[pairKey]Like), nextID: 1}
}

func (s *InMemoryStore) Insert(_ context.Context, userID, photoID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: userID, photoID: photoID}
	if _, exists := s.rows[key]; exists {
		return sentinel.ErrConflict
	}
	s.rows[key] = Like{ID: s.nextID, UserID: userID, PhotoID: photoID, CreatedAt: at}
	s.nextID++
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID, photoID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: userID, photoID: photoID}
	if _, exists := s.rows[key]; !exists {
		return false, nil
	}
	delete(s.rows, key)
	return true, nil
}

func (s *InMemoryStore) Exists(_ context.Context, userID, photoID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.rows[pairKey{userID: userID, photoID: photoID}]
	return exists, nil
}

func (s *InMemoryStore) CountForPhoto(_ context.Context, photoID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key := range s.rows {
		if key.photoID == photoID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) DeleteForPhoto(_ context.Context, photoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.rows {
		if key.photoID == photoID {
			delete(s.rows, key)
		}
	}
	return nil
}
